package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalerrors "github.com/Schera-ole/metricsaudit/internal/errors"
	models "github.com/Schera-ole/metricsaudit/internal/model"
)

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteText(&buf, models.AuditResult{
		Checked:   []string{"myapp.a", "myapp.b", "myapp.c"},
		Unqueried: []string{"myapp.a", "myapp.c"},
	})
	require.NoError(t, err)

	expected := "Custom metrics not queried in the last 24 hours:\n" +
		"myapp.a\n" +
		"myapp.c\n" +
		"Total custom metrics checked: 3\n" +
		"Total unqueried custom metrics: 2\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, models.AuditResult{}))

	expected := "Custom metrics not queried in the last 24 hours:\n" +
		"Total custom metrics checked: 0\n" +
		"Total unqueried custom metrics: 0\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, models.AuditResult{
		Window:    models.Window{Start: 100, End: 86500},
		Checked:   []string{"myapp.a", "myapp.b"},
		Unqueried: []string{"myapp.a"},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]any{"start": 100.0, "end": 86500.0}, decoded["window"])
	assert.Equal(t, []any{"myapp.a", "myapp.b"}, decoded["checked"])
	assert.Equal(t, []any{"myapp.a"}, decoded["unqueried"])
	assert.Equal(t, []any{}, decoded["failed"])
	assert.Equal(t, 2.0, decoded["checked_total"])
	assert.Equal(t, 1.0, decoded["unqueried_total"])
}

func TestWrite(t *testing.T) {
	result := models.AuditResult{Checked: []string{"myapp.a"}, Unqueried: []string{"myapp.a"}}

	var text bytes.Buffer
	require.NoError(t, Write(&text, "text", result))
	assert.Contains(t, text.String(), "Total unqueried custom metrics: 1")

	var js bytes.Buffer
	require.NoError(t, Write(&js, "json", result))
	assert.True(t, json.Valid(js.Bytes()))

	err := Write(&bytes.Buffer{}, "xml", result)
	assert.True(t, errors.Is(err, internalerrors.ErrUnsupportedFormat))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteText_WriterError(t *testing.T) {
	err := WriteText(failingWriter{}, models.AuditResult{Unqueried: []string{"myapp.a"}})
	assert.EqualError(t, err, "broken pipe")
}
