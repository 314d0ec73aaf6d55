package localizer

import (
	"context"

	"github.com/kossidts/lingueasy/internal/translator"
)

type contextKeyType struct{}

var localizationKey = contextKeyType{}

// Localization is what a request handler needs to render translated output.
type Localization struct {
	*translator.Translators
	// Languages lists the locales a request can resolve to, the fallback first.
	Languages []string
}

// WithLocalization returns a copy of ctx carrying loc.
func WithLocalization(ctx context.Context, loc *Localization) context.Context {
	return context.WithValue(ctx, localizationKey, loc)
}

// From returns the Localization stored in ctx, or nil when the request was
// not localized.
func From(ctx context.Context) *Localization {
	if ctx == nil {
		return nil
	}

	loc, _ := ctx.Value(localizationKey).(*Localization)
	return loc
}
