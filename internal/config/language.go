package config

// languages maps the supported ISO 639-1 codes to display names.
var languages = map[string]string{
	"en": "English",
	"zh": "Chinese",
	"hi": "Hindi",
	"es": "Spanish",
	"ar": "Arabic",
	"it": "Italian",
}

// ValidLanguage reports whether code is a supported language code.
func ValidLanguage(code string) bool {
	_, ok := languages[code]
	return ok
}

// LanguageName returns the display name for a language code, or the code
// itself when unknown.
func LanguageName(code string) string {
	if name, ok := languages[code]; ok {
		return name
	}
	return code
}

// EnglishTag is the filename language tag used for English artifacts
// produced by the speech engine's translate task.
const EnglishTag = "eng"
