package weather

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is the display language used when none is configured
const DefaultLocale = "ko-KR"

type localeStyle struct {
	tag      language.Tag
	provider string // OpenWeatherMap "lang" code
	date     func(t time.Time) string
}

var (
	koWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}
	ukWeekdays = [7]string{"нд", "пн", "вт", "ср", "чт", "пт", "сб"}
	deWeekdays = [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."}
	frWeekdays = [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}
	esWeekdays = [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	jaWeekdays = [7]string{"日", "月", "火", "水", "木", "金", "土"}
)

// English comes first so the matcher falls back to it
var localeStyles = []localeStyle{
	{
		tag:      language.English,
		provider: "en",
		date:     func(t time.Time) string { return t.Format("Mon, Jan 2") },
	},
	{
		tag:      language.Korean,
		provider: "kr",
		date: func(t time.Time) string {
			return fmt.Sprintf("%02d월 %02d일 (%s)", int(t.Month()), t.Day(), koWeekdays[t.Weekday()])
		},
	},
	{
		tag:      language.Ukrainian,
		provider: "ua",
		date: func(t time.Time) string {
			return fmt.Sprintf("%02d.%02d (%s)", t.Day(), int(t.Month()), ukWeekdays[t.Weekday()])
		},
	},
	{
		tag:      language.German,
		provider: "de",
		date: func(t time.Time) string {
			return fmt.Sprintf("%s, %02d.%02d.", deWeekdays[t.Weekday()], t.Day(), int(t.Month()))
		},
	},
	{
		tag:      language.French,
		provider: "fr",
		date: func(t time.Time) string {
			return fmt.Sprintf("%s %02d/%02d", frWeekdays[t.Weekday()], t.Day(), int(t.Month()))
		},
	},
	{
		tag:      language.Spanish,
		provider: "es",
		date: func(t time.Time) string {
			return fmt.Sprintf("%s, %02d/%02d", esWeekdays[t.Weekday()], t.Day(), int(t.Month()))
		},
	},
	{
		tag:      language.Japanese,
		provider: "ja",
		date: func(t time.Time) string {
			return fmt.Sprintf("%d月%d日 (%s)", int(t.Month()), t.Day(), jaWeekdays[t.Weekday()])
		},
	},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeStyles))
	for i, s := range localeStyles {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// Locale is a display language for descriptions and date labels
type Locale struct {
	style int
}

// ParseLocale matches a BCP 47 tag such as "ko-KR" or "uk" to a supported
// display language. Unknown or malformed tags fall back to English.
func ParseLocale(s string) Locale {
	_, idx := language.MatchStrings(localeMatcher, s)
	return Locale{style: idx}
}

// Tag returns the base language tag
func (l Locale) Tag() language.Tag {
	return localeStyles[l.style].tag
}

// ProviderCode returns the value sent as the provider's "lang" parameter
func (l Locale) ProviderCode() string {
	return localeStyles[l.style].provider
}

// DateLabel formats t with its day of week in this language
func (l Locale) DateLabel(t time.Time) string {
	return localeStyles[l.style].date(t)
}

func (l Locale) String() string {
	return l.Tag().String()
}

// TimeLabel formats t as HH:MM
func TimeLabel(t time.Time) string {
	return t.Format("15:04")
}
