package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader holds a validated catalog read from a YAML file
type Loader struct {
	catalog Catalog
}

func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, parses and validates the catalog file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading catalog file: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}

	l.catalog = c
	return nil
}

// Books returns the loaded books in file order
func (l *Loader) Books() []BookEntry {
	return l.catalog.Books
}

// Customers returns the loaded customers in file order
func (l *Loader) Customers() []CustomerEntry {
	return l.catalog.Customers
}
