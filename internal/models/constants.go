package models

// DefaultBaseURL is the backend the browser frontend ships with.
const DefaultBaseURL = "http://127.0.0.1:8000"

// API paths, relative to the base URL
const (
	PathLogin         = "/api/users/login/"
	PathRegister      = "/api/users/register/"
	PathAnalyze       = "/api/plant_doctor_ai/analyze/"
	PathHistory       = "/api/plant_doctor_ai/history/"
	PathAnalytics     = "/api/plant_doctor_ai/analytics/"
	PathChat          = "/api/plant_doctor_ai/chat/"
	PathHistoryDelete = PathHistory + "%d/"
)

// Language is a supported response locale.
type Language struct {
	Code string
	Name string
}

// Supported locales, matching the frontend language switcher.
var (
	LangEnglish = Language{Code: "en", Name: "English"}
	LangHindi   = Language{Code: "hi", Name: "हिंदी"}
	LangSpanish = Language{Code: "es", Name: "Español"}
	LangFrench  = Language{Code: "fr", Name: "Français"}

	DefaultLanguage = LangEnglish
)

// AllLanguages returns the supported locales in display order.
func AllLanguages() []Language {
	return []Language{LangEnglish, LangHindi, LangSpanish, LangFrench}
}

// LanguageFromCode returns the Language for a locale code, falling back
// to English for unknown codes.
func LanguageFromCode(code string) Language {
	for _, l := range AllLanguages() {
		if l.Code == code {
			return l
		}
	}
	return DefaultLanguage
}

// MaxImageSize is the upload size cap enforced client-side.
const MaxImageSize = 20 * 1024 * 1024 // 20MB

// SupportedImageTypes returns the MIME types accepted for analysis.
func SupportedImageTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}
}
