package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Day", "Course"},
		Rows: []map[string]string{
			{"Day": "Mon", "Course": "01:198:111"},
			{"Day": "Wed", "Course": "01:198:112"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Course", lines[0])
	assert.Equal(t, "Mon,01:198:111", lines[1])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Day", "Start", "Course"},
		Rows:    []map[string]string{{"Day": "Mon", "Start": "10:00", "Course": "01:198:111"}},
	}

	out, err := NewPDFExporter().Render(data, "Fall Draft")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	require.Error(t, err)
}
