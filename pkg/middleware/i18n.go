package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/planhive/planhive/pkg/intl"
)

// Application is the subset of the app registry the localizer middleware needs.
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

// languageTagsFromCodes converts language codes to language.Tag slice
func languageTagsFromCodes(codes []string) []language.Tag {
	supported := intl.GetSupportedLanguages(codes)
	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = lang.Tag
	}
	return tags
}

func matchSupported(defaultLocale language.Tag, supported []language.Tag, candidates []language.Tag) language.Tag {
	if len(supported) == 0 {
		return defaultLocale
	}
	if len(candidates) == 0 {
		candidates = []language.Tag{defaultLocale}
	}
	matcher := language.NewMatcher(supported)
	_, idx, _ := matcher.Match(candidates...)
	return supported[idx]
}

func useLocale(r *http.Request, defaultLocale language.Tag, supported []language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return matchSupported(defaultLocale, supported, nil)
	}
	return matchSupported(defaultLocale, supported, tags)
}

func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supportedLanguages := languageTagsFromCodes(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				locale := useLocale(r, language.English, supportedLanguages)
				ctx := intl.WithLocalizer(
					r.Context(),
					i18n.NewLocalizer(bundle, locale.String()),
				)
				ctx = intl.WithLocale(ctx, locale)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
