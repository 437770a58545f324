package propsource

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/layout_designer/properties"
)

// Write stores the properties of st at path, in store order, using the
// format given by the file extension.
func Write(path string, st *properties.Store) error {
	const errCtx = "writing properties"

	content, err := Encode(st.All(), FormatOf(path))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Encode serializes props in order.
func Encode(props []properties.Property, format Format) ([]byte, error) {
	switch format {
	case FormatStamps:
		return encodeStamps(props), nil
	case FormatYAML:
		return encodeYAML(props)
	default:
		return encodeJSON(props)
	}
}

func encodeYAML(props []properties.Property) ([]byte, error) {
	const errCtx = "encoding yaml"

	ms := make(yaml.MapSlice, 0, len(props))
	for _, pr := range props {
		ms = append(ms, yaml.MapItem{Key: pr.Name, Value: pr.Value})
	}

	out, err := yaml.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// encodeJSON writes an object member by member since maps would lose
// the store order.
func encodeJSON(props []properties.Property) ([]byte, error) {
	const errCtx = "encoding json"

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, pr := range props {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(pr.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		val, err := json.Marshal(pr.Value)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: property %s: %w", errCtx, pr.Name, err,
			)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	out.WriteByte('\n')

	return out.Bytes(), nil
}
