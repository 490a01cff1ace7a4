// Package seed loads the ledger bootstrap catalog from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"workorders/internal/core/domain/model/inventory"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the catalog shipped with the binary.
func Default() (inventory.Catalog, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}

// Load reads the catalog at path, or the default one when path is empty.
func Load(path string) (inventory.Catalog, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return inventory.Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode parses and validates a catalog document. Unknown keys are rejected.
func Decode(r io.Reader) (inventory.Catalog, error) {
	var catalog inventory.Catalog

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return inventory.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return inventory.Catalog{}, err
	}

	return catalog, nil
}
