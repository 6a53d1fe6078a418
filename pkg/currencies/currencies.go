// Package currencies holds the target codes a conversion can be made into.
package currencies

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed currencies.yaml
var embedded []byte

type Catalog struct {
	Fiat   []string `yaml:"fiat"   json:"fiat"`
	Crypto []string `yaml:"crypto" json:"crypto"`
}

var (
	loadOnce sync.Once
	builtin  Catalog
	loadErr  error
)

// Parse decodes a catalog document, upper-casing codes and dropping
// blanks and duplicates while keeping the first occurrence's position.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.Wrap(err, "failed to parse currency catalog")
	}

	seen := make(map[string]bool)
	c.Fiat = normalize(c.Fiat, seen)
	c.Crypto = normalize(c.Crypto, seen)
	if len(c.Fiat)+len(c.Crypto) == 0 {
		return Catalog{}, errors.New("currency catalog is empty")
	}
	return c, nil
}

func normalize(codes []string, seen map[string]bool) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// Builtin returns the embedded catalog.
func Builtin() Catalog {
	loadOnce.Do(func() {
		builtin, loadErr = Parse(embedded)
	})
	if loadErr != nil {
		panic(loadErr)
	}
	return builtin
}

// All lists every target code, fiat first.
func (c Catalog) All() []string {
	all := make([]string, 0, len(c.Fiat)+len(c.Crypto))
	all = append(all, c.Fiat...)
	return append(all, c.Crypto...)
}
