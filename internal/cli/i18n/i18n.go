// Package i18n loads the embedded message bundles used by the shell.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator renders message IDs in one language, falling back to English.
type Translator struct {
	localizer *goi18n.Localizer
}

// New parses every embedded bundle and returns a translator for lang.
func New(lang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name(), err)
		}
	}
	return &Translator{localizer: goi18n.NewLocalizer(bundle, lang, "en")}, nil
}

// T translates id. An unknown id is returned as is.
func (t *Translator) T(id string) string {
	return t.Tf(id, nil)
}

// Tf translates id, filling the template with data.
func (t *Translator) Tf(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}
