package locale

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Bundle is the set of static labels shown on the screen
type Bundle struct {
	Tag          language.Tag
	AppName      string
	Welcome      string
	ConvertTo    string
	Quantity     string
	CurrencyDesc string
}

var English = Bundle{
	Tag:          language.English,
	AppName:      "Currencyverter",
	Welcome:      "Welcome to Currencyverter!",
	ConvertTo:    "Convert to:",
	Quantity:     "Amount in Mexican pesos",
	CurrencyDesc: "Money icon",
}

var Spanish = Bundle{
	Tag:          language.Spanish,
	AppName:      "Currencyverter",
	Welcome:      "¡Bienvenido a Currencyverter!",
	ConvertTo:    "Convertir a:",
	Quantity:     "Cantidad en pesos mexicanos",
	CurrencyDesc: "Icono de dinero",
}

// Registry maps a language to its bundle. Regional variants share the bundle of their language
type Registry struct {
	mtx      sync.RWMutex
	bundles  map[language.Base]Bundle
	fallback Bundle
}

func NewRegistry(fallback Bundle) *Registry {
	r := &Registry{
		bundles:  make(map[language.Base]Bundle),
		fallback: fallback,
	}
	r.Register(fallback)

	return r
}

func (r *Registry) Register(b Bundle) {
	base, _ := b.Tag.Base()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.bundles[base] = b
}

// Lookup accepts BCP 47 tags as well as POSIX locale names like es_MX.UTF-8.
// The language must be stated, a region alone (und-MX) does not select it.
// Anything unparsable or unregistered gets the fallback bundle
func (r *Registry) Lookup(tag string) Bundle {
	t, err := Parse(tag)
	if err != nil {
		return r.fallback
	}

	base, conf := t.Base()
	if conf != language.Exact {
		return r.fallback
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if b, ok := r.bundles[base]; ok {
		return b
	}

	return r.fallback
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(English)
		defaultRegistry.Register(Spanish)
	})
	return defaultRegistry
}

// ForTag selects Spanish for any Spanish tag and English for everything else
func ForTag(tag string) Bundle {
	return DefaultRegistry().Lookup(tag)
}

// Parse reads a language tag, stripping the codeset and modifier of POSIX locale names
func Parse(tag string) (language.Tag, error) {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}

	switch tag {
	case "", "C", "POSIX":
		return language.Und, nil
	}

	return language.Parse(strings.ReplaceAll(tag, "_", "-"))
}

var envKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// FromEnv returns the user's language the way POSIX resolves it: LC_ALL, then LC_MESSAGES, then LANG
func FromEnv(lookup func(string) (string, bool)) string {
	for _, key := range envKeys {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
	}

	return ""
}
