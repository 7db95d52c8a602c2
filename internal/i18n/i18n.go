// Package i18n holds the static UI string bundles.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"paskoocheh/internal/locale"
)

//go:embed locales/*.json
var localesFS embed.FS

type Catalog struct {
	bundle     *goi18n.Bundle
	localizers map[locale.Code]*goi18n.Localizer
}

func Load() (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	catalog := &Catalog{
		bundle:     bundle,
		localizers: make(map[locale.Code]*goi18n.Localizer),
	}

	for _, code := range locale.Supported() {
		filePath := path.Join("locales", string(code)+".json")
		data, err := localesFS.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filePath, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, filePath); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filePath, err)
		}
		catalog.localizers[code] = goi18n.NewLocalizer(bundle, string(code))
	}

	return catalog, nil
}

// T returns the message for id, or id itself when no bundle defines it.
func (c *Catalog) T(code locale.Code, id string) string {
	return c.localize(code, &goi18n.LocalizeConfig{MessageID: id})
}

// Plural selects the plural form for count and fills {{.Count}} with locale digits.
func (c *Catalog) Plural(code locale.Code, id string, count int) string {
	return c.localize(code, &goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]string{"Count": locale.FormatNumber(code, count)},
	})
}

func (c *Catalog) localize(code locale.Code, cfg *goi18n.LocalizeConfig) string {
	if c == nil {
		return cfg.MessageID
	}

	localizer, ok := c.localizers[code]
	if !ok {
		localizer = goi18n.NewLocalizer(c.bundle, string(code), language.English.String())
	}

	message, err := localizer.Localize(cfg)
	if err != nil || message == "" {
		return cfg.MessageID
	}

	return message
}

// Translator binds a catalog to one locale for rendering.
type Translator struct {
	catalog *Catalog
	Locale  locale.Code
}

func (c *Catalog) For(code locale.Code) Translator {
	return Translator{catalog: c, Locale: code}
}

func (t Translator) T(id string) string {
	return t.catalog.T(t.Locale, id)
}

func (t Translator) Plural(id string, count int) string {
	return t.catalog.Plural(t.Locale, id, count)
}

func (t Translator) Number(n int) string {
	return locale.FormatNumber(t.Locale, n)
}

func (t Translator) Dir() string {
	return t.Locale.Direction()
}
