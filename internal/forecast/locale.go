package forecast

import (
	"time"

	"golang.org/x/text/language"
)

// Locale renders weekday labels and names the provider language
type Locale struct {
	Tag          language.Tag
	ProviderLang string // value of OpenWeather's lang parameter
	weekdays     [7]string
}

// Weekday returns the short weekday name for t
func (l Locale) Weekday(t time.Time) string {
	return l.weekdays[t.Weekday()]
}

var (
	PortugueseBR = Locale{
		Tag:          language.BrazilianPortuguese,
		ProviderLang: "pt_br",
		weekdays:     [7]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."},
	}
	English = Locale{
		Tag:          language.English,
		ProviderLang: "en",
		weekdays:     [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
	Spanish = Locale{
		Tag:          language.Spanish,
		ProviderLang: "es",
		weekdays:     [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	}

	supported = []Locale{PortugueseBR, English, Spanish}
	matcher   = language.NewMatcher([]language.Tag{PortugueseBR.Tag, English.Tag, Spanish.Tag})
)

// MatchLocale picks the closest supported locale for a BCP 47 tag or an
// Accept-Language header value. Unparseable input yields pt-BR.
func MatchLocale(value string) Locale {
	if value == "" {
		return PortugueseBR
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return PortugueseBR
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return PortugueseBR
	}
	return supported[idx]
}
