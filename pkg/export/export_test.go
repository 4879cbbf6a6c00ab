package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Agenda",
		Headers: []string{"Time", "Track", "Title"},
		Rows: []map[string]string{
			{"Time": "10:00 AM - 10:45 AM", "Track": "1", "Title": "Keynote, part one"},
			{"Time": "11:00 AM - 11:45 AM", "Track": "2"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Time,Track,Title\n10:00 AM - 10:45 AM,1,\"Keynote, part one\"\n11:00 AM - 11:45 AM,2,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter(map[string]float64{"Time": 45}).Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFColumnWidths(t *testing.T) {
	e := NewPDFExporter(map[string]float64{"Time": 77})
	widths := e.columnWidths([]string{"Time", "Track", "Title"})
	assert.Equal(t, []float64{77, 100, 100}, widths)
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
}
