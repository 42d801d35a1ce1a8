package intl

import (
	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	// allSupportedLanguages is the master list of all languages the app supports
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
		{
			Code:        "it",
			VerboseName: "Italiano",
			Tag:         language.Italian,
		},
	}

	// SupportedLanguages is the default list (all languages supported by the runtime).
	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages returns a filtered list of supported languages based on the whitelist.
// If whitelist is nil or empty, returns all supported languages.
// If whitelist is provided, only languages with codes in the whitelist are returned.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	whitelistMap := make(map[string]bool)
	for _, code := range whitelist {
		whitelistMap[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if whitelistMap[lang.Code] {
			filtered = append(filtered, lang)
		}
	}

	return filtered
}
