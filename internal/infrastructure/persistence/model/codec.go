package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// List-valued game fields are stored as UTF-8 JSON arrays in text columns.
// The encode/decode pair is the serialization boundary: a nil slice maps to a
// NULL column, an empty slice to "[]", and both decode back exactly. A NULL
// or empty column decodes to an empty list, never an error.

func encodeList(values []string) (*string, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	s := string(data)
	return &s, nil
}

func decodeList(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(*raw), &values); err != nil {
		return nil, fmt.Errorf("decode list %q: %w", *raw, err)
	}
	return values, nil
}

// Store names keep the original comma-joined text layout.

func encodeCSV(values []string) string {
	return strings.Join(values, ",")
}

func decodeCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
