package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// CatalogFromJSON reads a catalog bundle from a JSON file.
func CatalogFromJSON(file string) (Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Catalog{}, fmt.Errorf("cannot read catalog file: %w", err)
	}
	return DecodeCatalog(bytes)
}

// DecodeCatalog decodes a catalog bundle from raw JSON.
func DecodeCatalog(raw []byte) (Catalog, error) {
	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return Catalog{}, fmt.Errorf("cannot parse catalog json: %w", err)
	}

	var catalog Catalog
	if err := mapstructure.Decode(document, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("cannot decode catalog: %w", err)
	}

	// Fill derived subject ids where the input leaves them blank.
	for i, subject := range catalog.Subjects {
		if subject.ID == "" {
			catalog.Subjects[i].ID = DeriveSubjectID(subject.Code, subject.Kind)
		}
	}

	return catalog, nil
}
