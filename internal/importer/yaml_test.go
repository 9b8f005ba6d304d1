package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldplan/fieldplan/internal/importer"
)

const validDocument = `
portfolio:
  name: north-sea
  description: North Sea drilling candidates
projects:
  - name: alpha
    spudYear: 2024
    drillDays: 90
    profile:
      - { year: 2025, rate: 40 }
      - { year: 2027, rate: 20 }
  - name: bravo
    spudYear: 2026
    drillDays: 120
    profile:
      - { year: 2027, rate: 15 }
      - { year: 2029, rate: 5 }
`

func TestParse_ValidDocument(t *testing.T) {
	t.Parallel()

	doc, err := importer.Parse([]byte(validDocument))
	require.NoError(t, err)

	assert.Equal(t, "north-sea", doc.Portfolio.Name)
	require.Len(t, doc.Projects, 2)
	assert.Equal(t, "alpha", doc.Projects[0].Name)
	assert.Equal(t, 90, doc.Projects[0].DrillDays)
	require.Len(t, doc.Projects[0].Profile, 2)
	assert.Equal(t, 2025, doc.Projects[0].Profile[0].Year)
	assert.Equal(t, 40.0, doc.Projects[0].Profile[0].Rate)
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := importer.Parse([]byte("portfolio: [unclosed"))
	assert.Error(t, err)
}

func TestParse_MissingPortfolioName(t *testing.T) {
	t.Parallel()

	_, err := importer.Parse([]byte(`
portfolio:
  description: no name
projects:
  - name: alpha
    drillDays: 10
    profile:
      - { year: 2025, rate: 1 }
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portfolio.name")
}

func TestParse_NoProjects(t *testing.T) {
	t.Parallel()

	_, err := importer.Parse([]byte("portfolio:\n  name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one project")
}

func TestParse_ProjectFieldErrors(t *testing.T) {
	t.Parallel()

	_, err := importer.Parse([]byte(`
portfolio:
  name: north-sea
projects:
  - name: alpha
    drillDays: 0
    profile:
      - { year: 2025, rate: 1 }
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drillDays")

	_, err = importer.Parse([]byte(`
portfolio:
  name: north-sea
projects:
  - name: alpha
    drillDays: 30
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile")
}
