package export_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nmis-digital/dppmap/export"
	"github.com/nmis-digital/dppmap/passport"
)

func testPassport() *passport.Passport {
	p := passport.New()
	p.ID = "test-passport-0001"
	p.Identity = &passport.IdentityLayer{
		GlobalIDs:  map[string]string{"gtin": "05012345678900"},
		MakeModel:  map[string]string{"make": "NMIS", "model": "AX-10"},
		Conformity: []string{"CE"},
	}
	p.Sustainability = &passport.SustainabilityLayer{Mass: 1.75}
	return p
}

func TestExportJSON(t *testing.T) {
	out, err := export.NewExporter().Export(testPassport(), export.FormatJSON)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "test-passport-0001", doc["id"])

	identity, ok := doc["identity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"CE"}, identity["conformity"])

	// Unpopulated layers are omitted entirely.
	assert.NotContains(t, doc, "risk")
}

func TestExportYAML(t *testing.T) {
	out, err := export.NewExporter().Export(testPassport(), export.FormatYAML)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "test-passport-0001", doc["id"])
	assert.Contains(t, doc, "sustainability")
}

func TestExportJSONLD(t *testing.T) {
	out, err := export.NewExporter().Export(testPassport(), export.FormatJSONLD)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, export.EntityNamespace+"test-passport-0001", doc["@id"])
	assert.Equal(t, "dpp:DigitalProductPassport", doc["@type"])

	ctx, ok := doc["@context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, export.Namespace, ctx["dpp"])
	assert.Contains(t, ctx, "dpp:identity")
	assert.Contains(t, ctx, "dpp:provenance")

	// Layers are emitted under dpp-prefixed terms.
	assert.Contains(t, doc, "dpp:identity")
	assert.Contains(t, doc, "dpp:sustainability")
	assert.NotContains(t, doc, "identity")
}

func TestExportCustomPrefix(t *testing.T) {
	e := export.NewExporter()
	e.SetPrefix("nmis", "https://vocab.nmis.scot/")

	out, err := e.Export(testPassport(), export.FormatJSONLD)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"nmis": "https://vocab.nmis.scot/"`))
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := export.NewExporter().Export(testPassport(), export.Format("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestGetFormatInfo(t *testing.T) {
	info, ok := export.GetFormatInfo(export.FormatJSONLD)
	require.True(t, ok)
	assert.Equal(t, "application/ld+json", info.MIMEType)
	assert.Equal(t, ".jsonld", info.Extension)

	_, ok = export.GetFormatInfo(export.Format("csv"))
	assert.False(t, ok)
}
