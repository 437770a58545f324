package propsource

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/layout_designer/properties"
)

// decodeDocument reads a top-level YAML mapping keeping its key order.
// Duplicate keys are allowed; the store keeps the last value.
func decodeDocument(content []byte) ([]properties.Entry, error) {
	const errCtx = "decoding yaml"

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	var ms yaml.MapSlice

	if err := yaml.UnmarshalWithOptions(
		content, &ms, yaml.AllowDuplicateMapKey(),
	); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	entries := make([]properties.Entry, 0, len(ms))

	for _, it := range ms {
		val, err := scalar(it.Value)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: key %v: %w", errCtx, it.Key, err,
			)
		}

		entries = append(entries, properties.Entry{
			Name:  properties.Text(it.Key),
			Value: val,
		})
	}

	return entries, nil
}

// scalar keeps scalar values as decoded and turns nested values into
// their compact JSON text.
func scalar(val any) (any, error) {
	switch val.(type) {
	case nil, string, bool,
		int, int64, uint64, float64:
		return val, nil
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("encoding nested value: %w", err)
	}

	return string(raw), nil
}
