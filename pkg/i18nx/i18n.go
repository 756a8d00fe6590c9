package i18nx

import (
	"fmt"
	"strings"

	confirmationservice "github.com/stroy1click/confirmation-service"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Translator resolves localized response messages. English is the fallback
// language; the locale is picked per request from Accept-Language.
type Translator struct {
	bundle *i18n.Bundle
	enloc  *i18n.Localizer
	ruloc  *i18n.Localizer
}

func NewTranslator() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"locales/en.toml", "locales/ru.toml"} {
		if _, err := bundle.LoadMessageFileFS(confirmationservice.Locales, file); err != nil {
			return nil, fmt.Errorf("load message file %s failed: %w", file, err)
		}
	}

	return &Translator{
		bundle: bundle,
		enloc:  i18n.NewLocalizer(bundle, "en"),
		ruloc:  i18n.NewLocalizer(bundle, "ru"),
	}, nil
}

func (t *Translator) Localizer(lang string) *i18n.Localizer {
	if strings.HasPrefix(lang, "ru") {
		return t.ruloc
	}

	return t.enloc
}

// Message returns the localized message for id, falling back to the id itself
// when no translation exists.
func (t *Translator) Message(lang string, id string) string {
	msg, err := t.Localizer(lang).Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}

	return msg
}
