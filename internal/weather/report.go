package weather

import (
	"fmt"
	"strings"
	"time"
)

// Report is the payload returned by the weather data service for one grid cell.
type Report struct {
	Code string     `json:"code"`
	Data ReportData `json:"data"`
}

// ReportData holds the forecast of one base date, split into time slots.
type ReportData struct {
	BaseDate       string `json:"baseDate"` // YYYYMMDD
	RegionCode     string `json:"regionCode"`
	RegionFullName string `json:"regionFullName"`
	Slots          []Slot `json:"weatherInfoList"`
}

// Slot is the forecast of a single hour. Values are passed through as the service
// formats them (e.g. "1mm 미만", "강수없음").
type Slot struct {
	BaseTime string `json:"baseTime"` // HHMM
	PCP      string `json:"pcp"`
	POP      string `json:"pop"`
	PTY      string `json:"pty"`
	REH      string `json:"reh"`
	SKY      string `json:"sky"`
	SNO      string `json:"sno"`
	TMN      string `json:"tmn"`
	TMP      string `json:"tmp"`
	TMX      string `json:"tmx"`
	UUU      string `json:"uuu"`
	VEC      string `json:"vec"`
	VVV      string `json:"vvv"`
	WAV      string `json:"wav"`
	WSD      string `json:"wsd"`
}

// Category describes a forecast field.
type Category struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// Categories maps forecast category codes to their display name and unit.
var Categories = map[string]Category{
	"TMP": {Name: "온도", Unit: "°C"},
	"UUU": {Name: "풍속(동서)", Unit: "m/s"},
	"VVV": {Name: "풍속(남북)", Unit: "m/s"},
	"VEC": {Name: "풍향", Unit: "deg"},
	"WSD": {Name: "풍속", Unit: "m/s"},
	"SKY": {Name: "하늘상태", Unit: ""},
	"PTY": {Name: "강수형태", Unit: ""},
	"POP": {Name: "강수확률", Unit: "%"},
	"WAV": {Name: "파고", Unit: "M"},
	"PCP": {Name: "강수량", Unit: "mm"},
	"REH": {Name: "습도", Unit: "%"},
	"SNO": {Name: "적설량", Unit: "cm"},
	"TMX": {Name: "최고기온", Unit: "°C"},
	"TMN": {Name: "최저기온", Unit: "°C"},
}

// Value returns the slot value of a category code such as "TMP".
func (s Slot) Value(code string) (string, bool) {
	switch strings.ToUpper(code) {
	case "PCP":
		return s.PCP, true
	case "POP":
		return s.POP, true
	case "PTY":
		return s.PTY, true
	case "REH":
		return s.REH, true
	case "SKY":
		return s.SKY, true
	case "SNO":
		return s.SNO, true
	case "TMN":
		return s.TMN, true
	case "TMP":
		return s.TMP, true
	case "TMX":
		return s.TMX, true
	case "UUU":
		return s.UUU, true
	case "VEC":
		return s.VEC, true
	case "VVV":
		return s.VVV, true
	case "WAV":
		return s.WAV, true
	case "WSD":
		return s.WSD, true
	default:
		return "", false
	}
}

// The first forecast of the day is issued at 05:00; before that the
// previous day's 23:00 slot is current.
const firstIssueHour = 5

// KST is Korea Standard Time. Korea observes no daylight saving.
var KST = time.FixedZone("KST", 9*60*60)

// CurrentSlot picks the slot to display at now, read in KST: before 05:00 the
// "2300" slot, otherwise the slot of the current hour. When no slot matches, the
// first slot is returned. ok is false only if the report has no slots.
func (r *Report) CurrentSlot(now time.Time) (Slot, bool) {
	if len(r.Data.Slots) == 0 {
		return Slot{}, false
	}

	now = now.In(KST)

	want := fmt.Sprintf("%02d00", now.Hour())
	if now.Hour() < firstIssueHour {
		want = "2300"
	}

	for _, slot := range r.Data.Slots {
		if slot.BaseTime == want {
			return slot, true
		}
	}

	return r.Data.Slots[0], true
}

// FormatDateTime renders a YYYYMMDD date and HHMM time as "YYYY-MM-DD HH:MM".
// Inputs that are too short are returned unchanged, joined by a space.
func FormatDateTime(baseDate, baseTime string) string {
	if len(baseDate) < 8 || len(baseTime) < 4 {
		return strings.TrimSpace(baseDate + " " + baseTime)
	}

	return fmt.Sprintf("%s-%s-%s %s:%s",
		baseDate[0:4], baseDate[4:6], baseDate[6:8], baseTime[0:2], baseTime[2:4])
}
