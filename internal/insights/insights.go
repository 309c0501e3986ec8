// Package insights holds the per-section analysis results and writes
// them out in section order.
package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionID names the n-th section (1-based).
func SectionID(n int) string {
	return fmt.Sprintf("Section %d", n)
}

// Record is the outcome for one section: a summary with detailed
// insights, or an error. A record with Error set serializes only that.
type Record struct {
	Summary          string
	DetailedInsights string
	Error            string
}

// Failed reports whether the record carries an error.
func (r Record) Failed() bool {
	return r.Error != ""
}

type successJSON struct {
	Summary          string `json:"Summary" yaml:"Summary"`
	DetailedInsights string `json:"Detailed Insights" yaml:"Detailed Insights"`
}

type errorJSON struct {
	Error string `json:"Error" yaml:"Error"`
}

func (r Record) view() any {
	if r.Failed() {
		return errorJSON{Error: r.Error}
	}
	return successJSON{Summary: r.Summary, DetailedInsights: r.DetailedInsights}
}

func (r Record) MarshalJSON() ([]byte, error) {
	return marshalNoEscape(r.view())
}

type entry struct {
	id     string
	record Record
}

// Collection maps section identifiers to records, keeping insertion order.
type Collection struct {
	entries []entry
	index   map[string]int
}

func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Set stores rec under id. Re-setting an id replaces the record in place.
func (c *Collection) Set(id string, rec Record) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[id]; ok {
		c.entries[i].record = rec
		return
	}
	c.index[id] = len(c.entries)
	c.entries = append(c.entries, entry{id: id, record: rec})
}

// Get returns the record stored under id.
func (c *Collection) Get(id string) (Record, bool) {
	i, ok := c.index[id]
	if !ok {
		return Record{}, false
	}
	return c.entries[i].record, true
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.entries)
}

// IDs returns section identifiers in insertion order.
func (c *Collection) IDs() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.id
	}
	return out
}

// Failures counts records that carry an error.
func (c *Collection) Failures() int {
	n := 0
	for _, e := range c.entries {
		if e.record.Failed() {
			n++
		}
	}
	return n
}

// MarshalJSON writes the collection as one object in insertion order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(e.id)
		if err != nil {
			return nil, err
		}
		val, err := e.record.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
