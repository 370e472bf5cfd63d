// Package i18n loads the embedded message catalogs and resolves a Localizer
// for the configured display locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

// Catalog holds every loaded locale, keyed by its canonical tag.
type Catalog struct {
	builder  *catalog.Builder
	tags     []language.Tag
	matcher  language.Matcher
	messages map[string]map[string]string
}

// Load reads the catalogs compiled into the binary.
func Load() (*Catalog, error) {
	return LoadFromFS(embeddedFS)
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFromFS reads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	messages := map[string]map[string]string{}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: invalid locale %q: %w", path, locale, err)
		}
		if _, dup := messages[locale]; dup {
			return nil, fmt.Errorf("catalog %s: locale %q defined twice", path, locale)
		}
		if file.Messages == nil {
			file.Messages = map[string]string{}
		}
		messages[locale] = file.Messages
	}

	base, ok := messages[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale leads the tag list so the matcher falls back to it.
	locales := make([]string, 0, len(messages))
	for locale := range messages {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	locales = append([]string{BaseLocale}, locales...)

	c := &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		messages: messages,
	}
	for _, locale := range locales {
		tag := language.MustParse(locale)
		c.tags = append(c.tags, tag)
		msgs := messages[locale]
		for key, fallback := range base {
			if _, ok := msgs[key]; !ok {
				msgs[key] = fallback
			}
		}
		for key, text := range msgs {
			if err := c.builder.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Locales returns the loaded locale tags, base locale first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

// Keys returns the message keys defined for locale, sorted.
func (c *Catalog) Keys(locale string) []string {
	msgs := c.messages[locale]
	keys := make([]string, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Localizer resolves the closest supported locale to the requested one.
// Unknown or malformed locales get the base locale.
func (c *Catalog) Localizer(locale string) *Localizer {
	tag := c.tags[0]
	if requested, err := language.Parse(strings.TrimSpace(locale)); err == nil {
		_, idx, conf := c.matcher.Match(requested)
		if conf != language.No {
			tag = c.tags[idx]
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
	}
}

// Localizer formats catalog messages for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// Locale is the resolved locale tag.
func (l *Localizer) Locale() string {
	return l.tag.String()
}

// T formats the message stored under key. Keys missing from every catalog
// are rendered as-is.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}
