package translate

import "context"

// Translator converts text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
