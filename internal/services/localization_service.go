package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/valpere/nalsi/internal"
)

// SupportedLanguage represents a supported language
type SupportedLanguage struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

type SupportedLanguages map[string]SupportedLanguage

type Translation map[string]string

type Translations map[string]Translation

// minNameSimilarity is how close a misspelled language name must be, e.g. "koreen"
const minNameSimilarity = 0.75

// LocalizationService handles multi-language support
type LocalizationService struct {
	translations       Translations       // [language][key] = translation
	supportedLanguages SupportedLanguages // Supported languages
	defaultLanguage    string             // fallback language (English)
	codes              []string           // matcher index -> language code
	matcher            language.Matcher
	logger             *zerolog.Logger
	mu                 sync.RWMutex
}

// NewLocalizationService creates a new localization service
func NewLocalizationService(logger *zerolog.Logger) *LocalizationService {
	return &LocalizationService{
		translations:    make(Translations),
		defaultLanguage: internal.DefaultLanguage,
		logger:          logger,
	}
}

// LoadTranslations loads translation files from embedded filesystem
func (ls *LocalizationService) LoadTranslations(localesFS fs.FS) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	data, err := fs.ReadFile(localesFS, "languages.json")
	if err != nil {
		return fmt.Errorf("failed to read languages.json: %w", err)
	}

	ls.supportedLanguages = make(SupportedLanguages)
	if err := json.Unmarshal(data, &ls.supportedLanguages); err != nil {
		return fmt.Errorf("failed to parse languages.json: %w", err)
	}

	for code := range ls.supportedLanguages {
		filename := fmt.Sprintf("%s.json", code)

		data, err := fs.ReadFile(localesFS, filename)
		if err != nil {
			ls.logger.Error().
				Err(err).
				Str("language", code).
				Str("file", filename).
				Msg("Failed to read translation file")
			continue
		}

		translations := make(Translation)
		if err := json.Unmarshal(data, &translations); err != nil {
			ls.logger.Error().
				Err(err).
				Str("language", code).
				Msg("Failed to parse translation file")
			continue
		}

		ls.translations[code] = translations
		ls.logger.Info().
			Str("language", code).
			Int("keys", len(translations)).
			Msg("Loaded translations")
	}

	ls.buildMatcher()
	return nil
}

// buildMatcher indexes the loaded languages with the default first, so it wins ties and misses
func (ls *LocalizationService) buildMatcher() {
	codes := make([]string, 0, len(ls.translations))
	for code := range ls.translations {
		if code != ls.defaultLanguage {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	if _, ok := ls.translations[ls.defaultLanguage]; ok {
		codes = append([]string{ls.defaultLanguage}, codes...)
	}

	tags := make([]language.Tag, 0, len(codes))
	valid := codes[:0]
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			ls.logger.Warn().Err(err).Str("language", code).Msg("Skipping language with invalid tag")
			continue
		}
		tags = append(tags, tag)
		valid = append(valid, code)
	}

	ls.codes = valid
	ls.matcher = language.NewMatcher(tags)
}

// T translates a key to the specified language
func (ls *LocalizationService) T(ctx context.Context, language, key string, args ...any) string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	if langMap, exists := ls.translations[language]; exists {
		if translation, exists := langMap[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(translation, args...)
			}
			return translation
		}
	}

	// Fall back to default language
	if langMap, exists := ls.translations[ls.defaultLanguage]; exists {
		if translation, exists := langMap[key]; exists {
			ls.logger.Debug().
				Str("key", key).
				Str("requested_lang", language).
				Str("fallback_lang", ls.defaultLanguage).
				Msg("Using fallback language for translation")

			if len(args) > 0 {
				return fmt.Sprintf(translation, args...)
			}
			return translation
		}
	}

	ls.logger.Warn().
		Str("key", key).
		Str("language", language).
		Msg("Translation key not found")

	return key
}

// ResolveLanguage maps any BCP 47 tag, e.g. Telegram's "ko" or "uk", to the closest
// loaded language code. Unknown and malformed tags resolve to the default language.
func (ls *LocalizationService) ResolveLanguage(tag string) string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	if _, exists := ls.translations[tag]; exists {
		return tag
	}
	if ls.matcher == nil || len(ls.codes) == 0 {
		return ls.defaultLanguage
	}

	_, idx, confidence := ls.matcher.Match(language.Make(strings.TrimSpace(tag)))
	if confidence == language.No {
		return ls.defaultLanguage
	}
	return ls.codes[idx]
}

// IsLanguageSupported checks if a language code is supported
func (ls *LocalizationService) IsLanguageSupported(language string) bool {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	_, exists := ls.translations[language]
	return exists
}

// GetSupportedLanguages returns all supported languages
func (ls *LocalizationService) GetSupportedLanguages() SupportedLanguages {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	return ls.supportedLanguages
}

// SupportedCodes returns the loaded language codes in sorted order
func (ls *LocalizationService) SupportedCodes() []string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	codes := make([]string, 0, len(ls.translations))
	for code := range ls.translations {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetLanguageByCode returns language info by code
func (ls *LocalizationService) GetLanguageByCode(code string) (SupportedLanguage, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	if lang, exists := ls.supportedLanguages[code]; exists {
		return lang, exists
	}
	return ls.supportedLanguages[ls.defaultLanguage], false
}

// LanguageLabel returns the flag and native name of a language, e.g. "🇰🇷 한국어",
// or the code itself when it is not listed
func (ls *LocalizationService) LanguageLabel(code string) string {
	lang, ok := ls.GetLanguageByCode(code)
	if !ok {
		return code
	}
	return strings.TrimSpace(lang.Flag + " " + lang.Name)
}

// DetectLanguageFromName maps a language name or tag typed by the user to a loaded code
func (ls *LocalizationService) DetectLanguageFromName(name string) (string, bool) {
	originalName := strings.TrimSpace(name)
	lowerName := strings.ToLower(originalName)

	nameMap := map[string]string{
		"english":    "en-US",
		"korean":     "ko-KR",
		"한국어":        "ko-KR",
		"ukrainian":  "uk-UA",
		"українська": "uk-UA",
	}

	if code, exists := nameMap[lowerName]; exists && ls.IsLanguageSupported(code) {
		return code, true
	}

	if ls.IsLanguageSupported(originalName) {
		return originalName, true
	}

	// Accept short or differently cased tags such as "ko" or "UK-ua"
	if _, err := language.Parse(originalName); err == nil {
		resolved := ls.ResolveLanguage(originalName)
		if resolved != ls.defaultLanguage || strings.HasPrefix(lowerName, "en") {
			return resolved, true
		}
	}

	names := make([]string, 0, len(nameMap))
	for n := range nameMap {
		names = append(names, n)
	}
	sort.Strings(names)

	match, err := edlib.FuzzySearchThreshold(lowerName, names, minNameSimilarity, edlib.Levenshtein)
	if err == nil && match != "" && ls.IsLanguageSupported(nameMap[match]) {
		return nameMap[match], true
	}

	return ls.defaultLanguage, false
}

// GetAvailableTranslationKeys returns all available translation keys for a language
func (ls *LocalizationService) GetAvailableTranslationKeys(language string) []string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	langMap, exists := ls.translations[language]
	if !exists {
		return nil
	}

	keys := make([]string, 0, len(langMap))
	for key := range langMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
