package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type contextKey string

const (
	localizerKey contextKey = "localizer"
	localeKey    contextKey = "locale"
)

var ErrNoLocalizer = errors.New("localizer not found in context")

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey, l)
}

// UseLocalizer returns the request localizer. The second return value reports
// whether the i18n middleware ran.
func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey).(*i18n.Localizer)
	return l, ok
}

func WithLocale(ctx context.Context, locale language.Tag) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

func UseLocale(ctx context.Context, fallback language.Tag) language.Tag {
	locale, ok := ctx.Value(localeKey).(language.Tag)
	if !ok {
		return fallback
	}
	return locale
}

// MustT translates the message ID, panicking when no localizer is present.
// Missing message IDs fall back to the ID itself.
func MustT(ctx context.Context, msgID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		return msgID
	}
	return msg
}

// T translates the message ID with optional template data, falling back to the
// ID when no localizer is present or the message is missing.
func T(ctx context.Context, msgID string, data map[string]string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return msgID
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgID, TemplateData: data})
	if err != nil {
		return msgID
	}
	return msg
}
