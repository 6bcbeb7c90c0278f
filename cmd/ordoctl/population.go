package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ordo/internal/model"
)

// populationFile is the on-disk population document. YAML is the primary
// format; files ending in .json are decoded as JSON instead.
type populationFile struct {
	Entities []model.Entity `yaml:"entities" json:"entities"`
}

func loadPopulation(path string) ([]model.Entity, error) {
	if path == "" {
		return nil, fmt.Errorf("population file required (-f)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read population file: %w", err)
	}

	var doc populationFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Entities) == 0 {
		return nil, fmt.Errorf("%s: no entities", path)
	}

	seen := make(map[string]struct{}, len(doc.Entities))
	for i, e := range doc.Entities {
		if e.ID == "" {
			return nil, fmt.Errorf("%s: entity %d has no id", path, i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate entity id %q", path, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return doc.Entities, nil
}
