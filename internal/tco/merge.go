package tco

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeDocument unwraps a JSON document that may have been persisted as a
// JSON-encoded string. A null or empty document decodes to nil.
func DecodeDocument(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, fmt.Errorf("decode stringified document: %w", err)
	}
	return DecodeDocument([]byte(inner))
}

// DeepMerge returns a new map holding base overlaid with override. Nested objects present
// on both sides merge recursively; any other override value, arrays included, replaces
// the base value wholesale. Neither argument is modified.
func DeepMerge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range override {
		bm, baseIsMap := out[k].(map[string]any)
		om, overrideIsMap := ov.(map[string]any)
		if baseIsMap && overrideIsMap {
			out[k] = DeepMerge(bm, om)
			continue
		}
		out[k] = ov
	}
	return out
}

// MergeInputs overlays a partial, possibly stale, input document on top of defaults so
// that every field the calculator reads is present.
func MergeInputs(defaults InputSet, partial []byte) (InputSet, error) {
	doc, err := DecodeDocument(partial)
	if err != nil {
		return InputSet{}, err
	}
	if doc == nil {
		return defaults, nil
	}

	var override map[string]any
	if err := json.Unmarshal(doc, &override); err != nil {
		return InputSet{}, fmt.Errorf("parse inputs: %w", err)
	}

	base, err := toMap(defaults)
	if err != nil {
		return InputSet{}, err
	}

	merged, err := json.Marshal(DeepMerge(base, override))
	if err != nil {
		return InputSet{}, fmt.Errorf("encode merged inputs: %w", err)
	}

	var out InputSet
	if err := json.Unmarshal(merged, &out); err != nil {
		return InputSet{}, fmt.Errorf("decode merged inputs: %w", err)
	}
	return out, nil
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	return m, nil
}
