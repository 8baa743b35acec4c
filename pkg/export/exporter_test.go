package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"metric", "value"},
		Rows: []map[string]string{
			{"metric": "courses_added", "value": "3"},
			{"metric": "courses_deleted", "value": "1"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	out := string(payload)
	assert.Contains(t, out, "metric,value")
	assert.Contains(t, out, "courses_added,3")
	assert.Contains(t, out, "courses_deleted,1")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "Sync report 2026s")
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestPDFExporterRenderLines(t *testing.T) {
	payload, err := NewPDFExporter().RenderLines("Sync report 2026s", []string{
		"3 Courses added",
		"Added abc123 - Medienpädagogik 1",
	})
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
