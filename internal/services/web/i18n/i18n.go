// Package i18n resolves request locales and holds the web message catalog.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "tn_lang"
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher       = language.NewMatcher(supportedTags)
)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return supportedTags[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(MatchTags(tag))
}

// ParseTag parses value and maps it onto a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return supportedTags[index], true
}

// MatchTags returns the best supported tag for the preference list.
func MatchTags(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if r.URL != nil {
		if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
			if tag, ok := ParseTag(langValue); ok {
				return tag, true
			}
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags...), false
		}
	}

	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLanguage returns the request language as a string tag. It matches
// the module resolver signature.
func ResolveLanguage(r *http.Request) string {
	tag, _ := ResolveTag(r)
	return tag.String()
}

// Resolve picks the language for a page render from an optional resolver,
// persisting an explicit lang query selection.
func Resolve(w http.ResponseWriter, r *http.Request, resolve func(*http.Request) string) (*message.Printer, language.Tag) {
	tag, persist := ResolveTag(r)
	if resolve != nil {
		if resolved, ok := ParseTag(resolve(r)); ok {
			tag = resolved
		}
	}
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag
}
