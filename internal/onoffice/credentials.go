// Package onoffice talks to the onOffice enterprise API: it signs and sends
// the "get fields" action and returns the module records it answers with.
package onoffice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingToken is returned when credentials carry no API token.
	ErrMissingToken = errors.New("api token must be provided")
	// ErrMissingSecret is returned when credentials carry no API secret.
	ErrMissingSecret = errors.New("api secret must be provided")
)

// Credentials identify an onOffice API user.
type Credentials struct {
	Token  string
	Secret string
}

// Validate reports the first missing part of c.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return ErrMissingToken
	}
	if strings.TrimSpace(c.Secret) == "" {
		return ErrMissingSecret
	}
	return nil
}

// String never prints the secret.
func (c Credentials) String() string {
	if c.Token == "" {
		return "<no credentials>"
	}
	return fmt.Sprintf("token %s…", prefix(c.Token, 4))
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Language is the language labels are returned in.
type Language string

const (
	LanguageGerman   Language = "DEU"
	LanguageEnglish  Language = "ENG"
	LanguageFrench   Language = "FRA"
	LanguageSpanish  Language = "ESP"
	LanguageCroatian Language = "HRV"
	LanguageItalian  Language = "ITA"

	DefaultLanguage = LanguageGerman
)

var languageNames = map[Language]string{
	LanguageGerman:   "german",
	LanguageEnglish:  "english",
	LanguageFrench:   "french",
	LanguageSpanish:  "spanish",
	LanguageCroatian: "croatian",
	LanguageItalian:  "italian",
}

// Languages returns every supported language.
func Languages() []Language {
	return []Language{
		LanguageGerman,
		LanguageEnglish,
		LanguageFrench,
		LanguageSpanish,
		LanguageCroatian,
		LanguageItalian,
	}
}

func (l Language) String() string {
	return string(l)
}

// Name returns the English name of l.
func (l Language) Name() string {
	return languageNames[l]
}

// ParseLanguage accepts an ISO 639-2 code such as "ENG" or an English name
// such as "english", case-insensitively.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range Languages() {
		if strings.EqualFold(s, string(l)) || strings.EqualFold(s, l.Name()) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language: %q", s)
}
