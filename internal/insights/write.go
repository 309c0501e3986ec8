package insights

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteJSON encodes c with 4-space indentation.
func WriteJSON(w io.Writer, c *Collection) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

// WriteYAML encodes c as a YAML mapping in section order.
func WriteYAML(w io.Writer, c *Collection) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range c.entries {
		var val yaml.Node
		if err := val.Encode(e.record.view()); err != nil {
			return fmt.Errorf("encode %s: %w", e.id, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.id},
			&val,
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(4)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// Write encodes c in the named format.
func Write(w io.Writer, c *Collection, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return WriteJSON(w, c)
	case FormatYAML, "yml":
		return WriteYAML(w, c)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile writes c to path through a temp file in the same directory,
// so path is either fully written or untouched.
func WriteFile(path string, c *Collection, format string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Write(tmp, c, format); err != nil {
		tmp.Close()
		return fmt.Errorf("encode insights: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
