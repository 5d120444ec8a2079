package faq

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is an ISO 639-1 code from the fixed set served by the API.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageHindi    Language = "hi"
	LanguageBengali  Language = "bn"
	LanguageSpanish  Language = "es"
	LanguageTelugu   Language = "te"
	LanguageSanskrit Language = "sa"
)

// DefaultLanguage is the language canonical question/answer text is written in.
const DefaultLanguage = LanguageEnglish

// targetLanguages is the order translations are filled in on save.
var targetLanguages = []Language{
	LanguageHindi,
	LanguageBengali,
	LanguageSpanish,
	LanguageTelugu,
	LanguageSanskrit,
}

// LanguageInfo describes a served language for clients.
type LanguageInfo struct {
	Code       Language `json:"code"`
	Name       string   `json:"name"`
	NativeName string   `json:"nativeName"`
	Default    bool     `json:"default"`
}

// TargetLanguages returns the languages every FAQ is translated into.
func TargetLanguages() []Language {
	out := make([]Language, len(targetLanguages))
	copy(out, targetLanguages)
	return out
}

// AllLanguages returns the default language followed by every target language.
func AllLanguages() []Language {
	out := make([]Language, 0, len(targetLanguages)+1)
	out = append(out, DefaultLanguage)
	return append(out, targetLanguages...)
}

// IsTarget reports whether lang has stored translations.
func IsTarget(lang Language) bool {
	for _, candidate := range targetLanguages {
		if candidate == lang {
			return true
		}
	}
	return false
}

// ResolveLanguage maps a raw query value onto a served language.
// Anything unrecognised resolves to the default language.
func ResolveLanguage(raw string) Language {
	lang := Language(strings.ToLower(strings.TrimSpace(raw)))
	if lang == DefaultLanguage || IsTarget(lang) {
		return lang
	}
	return DefaultLanguage
}

// Languages lists every served language with display names.
func Languages() []LanguageInfo {
	all := AllLanguages()
	infos := make([]LanguageInfo, 0, len(all))
	for _, code := range all {
		infos = append(infos, describe(code))
	}
	return infos
}

// Name returns the English display name of the language, or the code itself.
func (l Language) Name() string {
	return describe(l).Name
}

func describe(code Language) LanguageInfo {
	info := LanguageInfo{Code: code, Name: string(code), NativeName: string(code), Default: code == DefaultLanguage}
	tag, err := language.Parse(string(code))
	if err != nil {
		return info
	}
	if name := display.English.Tags().Name(tag); name != "" {
		info.Name = name
		info.NativeName = name
	}
	if native := display.Self.Name(tag); native != "" {
		info.NativeName = native
	}
	return info
}
