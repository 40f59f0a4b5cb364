// Package i18n resolves the request language and prints catalog messages for
// the web service.
package i18n

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/platform/i18n/catalog"
	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "retina_lang"
)

var (
	supported = []language.Tag{
		language.MustParse("en-US"),
		language.MustParse("vi-VN"),
	}
	matcher = language.NewMatcher(supported)
	// registered forces catalog registration before the first printer is built.
	registered = catalog.Default()
)

// LanguageOption represents a supported language in the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// ParseTag returns the supported tag closest to value.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	return MatchTags([]language.Tag{tag})
}

// MatchTags picks the best supported tag for the given preferences.
func MatchTags(tags []language.Tag) (language.Tag, bool) {
	if len(tags) == 0 {
		return Default(), false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default(), false
	}
	return supported[index], true
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			tag, _ := MatchTags(tags)
			return tag, false
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, r *http.Request, tag language.Tag) {
	if w == nil {
		return
	}
	path := "/"
	if r != nil {
		path = basepath.Resolve(r.Context(), "/")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     path,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer prints catalog messages in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for tag.
func NewLocalizer(tag language.Tag) Localizer {
	return Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the localizer language.
func (l Localizer) Tag() language.Tag {
	if l.printer == nil {
		return Default()
	}
	return l.tag
}

// Lang returns the value for the html lang attribute.
func (l Localizer) Lang() string {
	return l.Tag().String()
}

// T prints the message registered under key.
func (l Localizer) T(key message.Reference, args ...any) string {
	printer := l.printer
	if printer == nil {
		printer = message.NewPrinter(Default())
	}
	return printer.Sprintf(key, args...)
}

type contextKey struct{}

// WithLocalizer returns ctx carrying l.
func WithLocalizer(ctx context.Context, l Localizer) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the request localizer, or the default language.
func FromContext(ctx context.Context) Localizer {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(Localizer); ok {
			return l
		}
	}
	return NewLocalizer(Default())
}

// Middleware resolves the request language once and stores the localizer in
// the request context. An explicit lang query parameter is remembered.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag, persist := ResolveTag(r)
			if persist {
				SetLanguageCookie(w, r, tag)
			}
			ctx := WithLocalizer(r.Context(), NewLocalizer(tag))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LanguageOptions lists the switcher entries for the page at u.
func LanguageOptions(l Localizer, u *url.URL) []LanguageOption {
	active := l.Tag()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  l.T("core.language." + tag.String()),
			URL:    LanguageURL(u, tag.String()),
			Active: tag == active,
		})
	}
	return options
}

// LanguageURL returns the request path with the language param updated.
func LanguageURL(u *url.URL, tag string) string {
	path := "/"
	query := url.Values{}
	if u != nil {
		if strings.TrimSpace(u.Path) != "" {
			path = u.Path
		}
		query = u.Query()
	}
	query.Set(LangParam, tag)
	return path + "?" + query.Encode()
}
