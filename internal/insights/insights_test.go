package insights

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func sampleCollection() *Collection {
	c := NewCollection()
	c.Set(SectionID(1), Record{Summary: "Growth expected.", DetailedInsights: "1. Growth <strong> & steady"})
	c.Set(SectionID(2), Record{Error: "model offline"})
	c.Set(SectionID(3), Record{Summary: "", DetailedInsights: "n/a"})
	return c
}

func TestSectionID(t *testing.T) {
	assert.Equal(t, "Section 1", SectionID(1))
	assert.Equal(t, "Section 12", SectionID(12))
}

func TestWriteJSON_IndentOrderAndShapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleCollection()))

	want := `{
    "Section 1": {
        "Summary": "Growth expected.",
        "Detailed Insights": "1. Growth <strong> & steady"
    },
    "Section 2": {
        "Error": "model offline"
    },
    "Section 3": {
        "Summary": "",
        "Detailed Insights": "n/a"
    }
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON_InsertionOrderBeyondNine(t *testing.T) {
	c := NewCollection()
	for i := 1; i <= 11; i++ {
		c.Set(SectionID(i), Record{Summary: "s"})
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, c))

	ids := objectKeys(t, buf.Bytes())
	assert.Equal(t, c.IDs(), ids)
	assert.Equal(t, "Section 10", ids[9])
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewCollection()))
	assert.Equal(t, "{}\n", buf.String())
}

func TestCollection_SetReplacesInPlace(t *testing.T) {
	c := NewCollection()
	c.Set("Section 1", Record{Summary: "a"})
	c.Set("Section 2", Record{Summary: "b"})
	c.Set("Section 1", Record{Error: "late failure"})

	assert.Equal(t, []string{"Section 1", "Section 2"}, c.IDs())
	rec, ok := c.Get("Section 1")
	require.True(t, ok)
	assert.True(t, rec.Failed())
	assert.Equal(t, 1, c.Failures())
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("Section 9")
	assert.False(t, ok)
}

func TestCollection_ZeroValueUsable(t *testing.T) {
	var c Collection
	c.Set("Section 1", Record{Summary: "x"})
	assert.Equal(t, 1, c.Len())
}

func TestWriteYAML_SectionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleCollection()))

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &node))
	root := node.Content[0]
	require.Equal(t, yaml.MappingNode, root.Kind)
	require.Len(t, root.Content, 6)
	assert.Equal(t, "Section 1", root.Content[0].Value)
	assert.Equal(t, "Section 2", root.Content[2].Value)
	assert.Equal(t, "Section 3", root.Content[4].Value)

	var decoded map[string]map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]string{"Error": "model offline"}, decoded["Section 2"])
	assert.Equal(t, "Growth expected.", decoded["Section 1"]["Summary"])
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, NewCollection(), "xml"))
}

func TestWriteFile_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "investor_insights.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFile(path, sampleCollection(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Len(t, back, 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFile_BadFormatLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.Error(t, WriteFile(path, sampleCollection(), "xml"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// objectKeys returns the top-level keys of a JSON object in document order.
func objectKeys(t *testing.T, data []byte) []string {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	return keys
}
