package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Reasons carried by sentinel records.
const (
	ParseFailureReason   = "Failed to parse extracted data."
	SchemaMismatchReason = "Extracted data does not match the resume schema."
)

// Record is the structured result for one resume: whatever JSON value the
// model produced, or a single-key {"error": reason} sentinel.
type Record struct {
	value any
}

// NewRecord wraps a decoded JSON value.
func NewRecord(v any) Record {
	return Record{value: v}
}

// ErrorRecord builds the failure sentinel.
func ErrorRecord(reason string) Record {
	return Record{value: map[string]any{"error": reason}}
}

// Value returns the underlying decoded JSON value.
func (r Record) Value() any {
	return r.value
}

// IsError reports whether the record is a mapping with an "error" key.
func (r Record) IsError() bool {
	m, ok := r.value.(map[string]any)
	if !ok {
		return false
	}
	_, has := m["error"]
	return has
}

// ErrorReason returns the sentinel's reason, or "" for a normal record.
func (r Record) ErrorReason() string {
	if !r.IsError() {
		return ""
	}
	reason, _ := r.value.(map[string]any)["error"].(string)
	return reason
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	v, err := decodeJSON(data)
	if err != nil {
		return err
	}
	r.value = v
	return nil
}

// MarshalYAML lets gopkg.in/yaml.v3 render the wrapped value. Numbers are
// converted so they are not emitted as quoted strings.
func (r Record) MarshalYAML() (any, error) {
	return yamlValue(r.value), nil
}

func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}

// EncodeIndent renders the record the way it is persisted: 4-space indent,
// no HTML escaping, trailing newline.
func EncodeIndent(r Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r.value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseRecord decodes cleaned completion text. Any well-formed JSON value is
// accepted; anything else yields the parse-failure sentinel.
func ParseRecord(cleaned string) (Record, bool) {
	v, err := decodeJSON([]byte(cleaned))
	if err != nil {
		return ErrorRecord(ParseFailureReason), false
	}
	return NewRecord(v), true
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number
// so phone numbers and years survive unchanged.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}
