// Package i18n resolves user-facing terms. Lookups fall back from the
// requested language to the default language and finally to the key itself,
// so a missing translation never renders as an empty string.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Source is an external term provider consulted before the catalog's own terms.
type Source interface {
	Lookup(key, lang string) (string, bool)
}

// Catalog holds terms per language.
type Catalog struct {
	defaultLang string
	external    Source

	mu    sync.RWMutex
	terms map[string]map[string]string // lang -> key -> term
}

// New returns a catalog seeded with the built-in Finnish terms. external may be nil.
func New(defaultLang string, external Source) *Catalog {
	c := &Catalog{
		defaultLang: Normalize(defaultLang),
		external:    external,
		terms:       map[string]map[string]string{},
	}
	if c.defaultLang == "" {
		c.defaultLang = "fi"
	}
	c.Add("fi", finnish)
	return c
}

// DefaultLang returns the language used when a term is missing.
func (c *Catalog) DefaultLang() string {
	return c.defaultLang
}

// Normalize reduces a language tag such as "fi-FI" or "sv_SE" to its base
// language ("fi", "sv"). Unparseable tags normalise to "".
func Normalize(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// Add merges terms for lang into the catalog.
func (c *Catalog) Add(lang string, terms map[string]string) {
	lang = Normalize(lang)
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.terms[lang]
	if !ok {
		m = make(map[string]string, len(terms))
		c.terms[lang] = m
	}
	for k, v := range terms {
		m[k] = v
	}
}

// Load reads a YAML file of the form
//
//	en:
//	  status_published: Published
//
// and merges every language it contains.
func (c *Catalog) Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading terms %s: %w", path, err)
	}
	var file map[string]map[string]string
	if err := v.Unmarshal(&file); err != nil {
		return fmt.Errorf("parsing terms %s: %w", path, err)
	}
	for lang, terms := range file {
		c.Add(lang, terms)
	}
	return nil
}

// T returns the term for key in lang, falling back to the default language
// and then to key.
func (c *Catalog) T(key, lang string) string {
	lang = Normalize(lang)
	if lang != "" {
		if s, ok := c.lookup(key, lang); ok {
			return s
		}
	}
	if s, ok := c.lookup(key, c.defaultLang); ok {
		return s
	}
	// The Finnish built-ins are the last resort before the key itself.
	if c.defaultLang != "fi" {
		if s, ok := c.lookup(key, "fi"); ok {
			return s
		}
	}
	return key
}

func (c *Catalog) lookup(key, lang string) (string, bool) {
	if c.external != nil {
		if s, ok := c.external.Lookup(key, lang); ok && s != "" {
			return s, true
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.terms[lang][key]
	return s, ok && s != ""
}

// Translator binds the catalog to one language.
func (c *Catalog) Translator(lang string) func(key string) string {
	return func(key string) string {
		return c.T(key, lang)
	}
}

// Format replaces {name} placeholders in term with the given values.
func Format(term string, pairs ...any) string {
	if len(pairs)%2 != 0 {
		pairs = pairs[:len(pairs)-1]
	}
	args := make([]string, 0, len(pairs))
	for i := 0; i < len(pairs); i += 2 {
		args = append(args, "{"+fmt.Sprint(pairs[i])+"}", fmt.Sprint(pairs[i+1]))
	}
	return strings.NewReplacer(args...).Replace(term)
}
