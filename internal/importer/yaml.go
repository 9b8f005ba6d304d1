// Package importer parses portfolio bulk-import documents.
package importer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a portfolio and its projects as uploaded by a client.
type Document struct {
	Portfolio PortfolioDoc `yaml:"portfolio"`
	Projects  []ProjectDoc `yaml:"projects"`
}

// PortfolioDoc is the portfolio header of an import document.
type PortfolioDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ProjectDoc is one project of an import document.
type ProjectDoc struct {
	Name      string       `yaml:"name"`
	SpudYear  int          `yaml:"spudYear"`
	DrillDays int          `yaml:"drillDays"`
	Profile   []ProfileDoc `yaml:"profile"`
}

// ProfileDoc is one production profile point.
type ProfileDoc struct {
	Year int     `yaml:"year"`
	Rate float64 `yaml:"rate"`
}

// Parse decodes and sanity-checks an import document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding import document: %w", err)
	}

	if doc.Portfolio.Name == "" {
		return nil, fmt.Errorf("import document: portfolio.name is required")
	}
	if len(doc.Projects) == 0 {
		return nil, fmt.Errorf("import document: at least one project is required")
	}
	for i, p := range doc.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("import document: projects[%d].name is required", i)
		}
		if p.DrillDays <= 0 {
			return nil, fmt.Errorf("import document: projects[%d].drillDays must be positive", i)
		}
		if len(p.Profile) == 0 {
			return nil, fmt.Errorf("import document: projects[%d].profile must not be empty", i)
		}
	}

	return &doc, nil
}
