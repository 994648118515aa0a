package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// LangKey is the gin context key holding the request language.
const LangKey = "lang"

var (
	translatorOnce sync.Once
	translator     *I18n
	defaultLang    = "en"
)

// SetDefaultLanguage sets the fallback language for translations.
func SetDefaultLanguage(lang string) {
	defaultLang = lang
}

// InitTranslator initializes the global translator from a directory of
// TOML message files.
func InitTranslator(translationsPath string) error {
	var initErr error
	translatorOnce.Do(func() {
		translator = NewI18n(language.English)
		initErr = translator.LoadTranslations(translationsPath)
	})
	return initErr
}

// GetTranslator returns the global translator, initializing it with the
// default path on first use.
func GetTranslator() *I18n {
	if translator == nil {
		_ = InitTranslator("configs/i18n")
	}
	return translator
}

// I18n manages message bundles and translation lookups.
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewI18n creates an I18n instance with the given default language.
func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &I18n{
		bundle:      bundle,
		defaultLang: defaultLang,
	}
}

// LoadTranslations loads every .toml message file in the directory.
func (i *I18n) LoadTranslations(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		i.bundle.MustLoadMessageFile(filepath.Join(dir, file.Name()))
	}
	return nil
}

// Translate returns the localized message for the given ID and language.
// The message ID itself is returned when no translation exists.
func (i *I18n) Translate(msgID string, lang string, data map[string]interface{}) string {
	tag := language.Make(lang)
	localizer := i18n.NewLocalizer(i.bundle, tag.String(), i.defaultLang.String())

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		lc.TemplateData = data
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID
	}
	return msg
}

// TranslateMessage translates a message ID using the request language
// stored in the gin context.
func TranslateMessage(c *gin.Context, msgID string, data map[string]interface{}) string {
	t := GetTranslator()
	if t == nil {
		return msgID
	}
	return t.Translate(msgID, LangFromContext(c), data)
}

// LangFromContext returns the language previously resolved by the language
// middleware, or the default.
func LangFromContext(c *gin.Context) string {
	lang, exists := c.Get(LangKey)
	if !exists {
		return defaultLang
	}
	langStr, ok := lang.(string)
	if !ok || langStr == "" {
		return defaultLang
	}
	return langStr
}

// ResolveLang picks a supported language from the X-Lang header, falling
// back to Accept-Language and then the default.
func ResolveLang(xLang, acceptLang string) string {
	if xLang != "" {
		return normalizeLang(xLang)
	}
	if acceptLang != "" {
		langs := strings.Split(acceptLang, ",")
		if len(langs) > 0 {
			first := strings.TrimSpace(strings.Split(langs[0], ";")[0])
			return normalizeLang(first)
		}
	}
	return defaultLang
}

func normalizeLang(lang string) string {
	code := strings.ToLower(strings.Split(lang, "-")[0])
	for _, supported := range []string{"en", "si"} {
		if code == supported {
			return code
		}
	}
	return defaultLang
}
