// Package locale picks one of the supported UI languages from a stored
// preference or an Accept-Language header.
package locale

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

type Locale string

const (
	English            Locale = "en"
	Korean             Locale = "ko"
	Japanese           Locale = "ja"
	ChineseSimplified  Locale = "zh-CN"
	ChineseTraditional Locale = "zh-TW"
	Spanish            Locale = "es"
	French             Locale = "fr"
	German             Locale = "de"
	Portuguese         Locale = "pt"
	Italian            Locale = "it"
	Russian            Locale = "ru"
	Arabic             Locale = "ar"
	Hindi              Locale = "hi"
	Dutch              Locale = "nl"
	Polish             Locale = "pl"
	Turkish            Locale = "tr"
	Vietnamese         Locale = "vi"
	Thai               Locale = "th"
	Indonesian         Locale = "id"
	Swedish            Locale = "sv"
)

const (
	Default       = English
	DefaultRegion = "US"

	// CookieName holds the preference written by the language switcher.
	CookieName = "NEXT_LOCALE"
)

var supported = []Locale{
	English, Korean, Japanese, ChineseSimplified, ChineseTraditional,
	Spanish, French, German, Portuguese, Italian,
	Russian, Arabic, Hindi, Dutch, Polish,
	Turkish, Vietnamese, Thai, Indonesian, Swedish,
}

var regions = map[Locale]string{
	English:            "US",
	Korean:             "KR",
	Japanese:           "JP",
	ChineseSimplified:  "CN",
	ChineseTraditional: "TW",
	Spanish:            "ES",
	French:             "FR",
	German:             "DE",
	Portuguese:         "BR",
	Italian:            "IT",
	Russian:            "RU",
	Arabic:             "SA",
	Hindi:              "IN",
	Dutch:              "NL",
	Polish:             "PL",
	Turkish:            "TR",
	Vietnamese:         "VN",
	Thai:               "TH",
	Indonesian:         "ID",
	Swedish:            "SE",
}

// Supported returns the supported locales in display order.
func Supported() []Locale {
	return slices.Clone(supported)
}

func (l Locale) String() string {
	return string(l)
}

// Region returns the default calling region for l, DefaultRegion when l is
// not supported.
func (l Locale) Region() string {
	if region, ok := regions[l]; ok {
		return region
	}
	return DefaultRegion
}

// Parse matches s against the supported set ignoring case.
func Parse(s string) (Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, l := range supported {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return "", false
}

// Resolve prefers a supported stored value over the header.
func Resolve(stored, acceptLanguage string) Locale {
	if l, ok := Parse(stored); ok {
		return l
	}
	return FromAcceptLanguage(acceptLanguage)
}

// FromAcceptLanguage never fails: with nothing usable it returns Default.
func FromAcceptLanguage(header string) Locale {
	for _, pref := range parseAcceptLanguage(header) {
		if l, ok := match(pref.tag); ok {
			return l
		}
	}
	return Default
}

type preference struct {
	tag    string
	weight float64
}

func parseAcceptLanguage(header string) []preference {
	parts := strings.Split(header, ",")
	prefs := make([]preference, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(part, ";")
		tag := strings.TrimSpace(fields[0])
		if tag == "" {
			continue
		}

		weight := 1.0
		for _, param := range fields[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err == nil && q >= 0 && q <= 1 {
				weight = q
			}
		}

		prefs = append(prefs, preference{tag: tag, weight: weight})
	}

	slices.SortStableFunc(prefs, func(a, b preference) int {
		switch {
		case a.weight > b.weight:
			return -1
		case a.weight < b.weight:
			return 1
		default:
			return 0
		}
	})

	return prefs
}

func match(tag string) (Locale, bool) {
	if l, ok := Parse(tag); ok {
		return l, true
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		base, _, _ := strings.Cut(tag, "-")
		return Parse(base)
	}

	base, script, region := parsed.Raw()
	if base.String() == "zh" {
		switch {
		case script.String() == "Hans":
			return ChineseSimplified, true
		case script.String() == "Hant":
			return ChineseTraditional, true
		case region.String() == "CN":
			return ChineseSimplified, true
		case region.String() == "TW", region.String() == "HK":
			return ChineseTraditional, true
		}
	}

	return Parse(base.String())
}
