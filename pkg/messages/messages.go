// Package messages resolves validation error kinds to the text shown in the
// per-field error slots.
package messages

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/payback159/contactform/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog holds user-facing texts keyed by error kind, with per-field overrides
type Catalog struct {
	Defaults map[models.ErrorKind]string            `yaml:"defaults"`
	Fields   map[string]map[models.ErrorKind]string `yaml:"fields"`
	Toast    string                                 `yaml:"toast"`
}

// Default returns the embedded catalog. It panics only if the embedded file
// is malformed, which is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("messages: embedded catalog: %v", err))
	}
	return c
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	return c, nil
}

// Load reads the YAML file at path and merges it onto the default catalog
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message catalog %s: %w", path, err)
	}
	override, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c := Default()
	c.Merge(override)
	return c, nil
}

// Merge copies every non-empty entry of other onto c
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for kind, text := range other.Defaults {
		if text == "" {
			continue
		}
		if c.Defaults == nil {
			c.Defaults = make(map[models.ErrorKind]string)
		}
		c.Defaults[kind] = text
	}
	for field, kinds := range other.Fields {
		for kind, text := range kinds {
			if text == "" {
				continue
			}
			if c.Fields == nil {
				c.Fields = make(map[string]map[models.ErrorKind]string)
			}
			if c.Fields[field] == nil {
				c.Fields[field] = make(map[models.ErrorKind]string)
			}
			c.Fields[field][kind] = text
		}
	}
	if other.Toast != "" {
		c.Toast = other.Toast
	}
}

// Message returns the text for a failing field. Field-specific entries win
// over kind defaults; the kind identifier is the last resort.
func (c *Catalog) Message(field string, kind models.ErrorKind) string {
	if c != nil {
		if text := c.Fields[field][kind]; text != "" {
			return text
		}
		if text := c.Defaults[kind]; text != "" {
			return text
		}
	}
	return string(kind)
}
