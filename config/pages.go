package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"easein-studio-backend/pkg/pagefx/page"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// PagesEnvPrefix marks page overrides in the environment. A double
// underscore separates levels: PAGEFX_PAGES__HOME__BEAM_CURSOR=false.
const PagesEnvPrefix = "PAGEFX_"

// Pages maps a page name to its behavior options.
type Pages map[string]page.Options

type pagesFile struct {
	Pages Pages `koanf:"pages" yaml:"pages"`
}

// defaultsProvider feeds the built-in profiles to koanf as YAML so the
// file and environment merge over them key by key.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	return yamlv3.Marshal(pagesFile{Pages: page.Defaults()})
}

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("defaults provider does not support Read()")
}

// LoadPages merges the built-in profiles, the YAML file at path (skipped
// when missing) and PAGEFX_ environment overrides, then validates every
// page.
func LoadPages(path string) (Pages, error) {
	k := koanf.New(".")

	if err := k.Load(defaultsProvider{}, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading default pages: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading pages config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing pages config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(PagesEnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, PagesEnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading pages env overrides: %w", err)
	}

	var out pagesFile
	if err := k.Unmarshal("", &out); err != nil {
		return nil, fmt.Errorf("unmarshalling pages config: %w", err)
	}

	pages := make(Pages, len(out.Pages))
	var errs []error
	for name, opts := range out.Pages {
		if opts.Name == "" {
			opts.Name = name
		}
		if err := opts.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		pages[name] = opts
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pages, nil
}

// Names returns the page names in sorted order.
func (p Pages) Names() []string {
	return slices.Sorted(maps.Keys(p))
}
