package propsource

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/layout_designer/properties"
)

var errNotObject = errors.New("top-level value is not an object")

// decodeJSON reads a top-level JSON object token by token. Key order,
// number text and nested value text are kept as written.
func decodeJSON(content []byte) ([]properties.Entry, error) {
	const errCtx = "decoding json"

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if tok != json.Delim('{') {
		return nil, fmt.Errorf("%s: %w", errCtx, errNotObject)
	}

	var entries []properties.Entry

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf(
				"%s: unexpected key %v", errCtx, tok,
			)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf(
				"%s: key %s: %w", errCtx, key, err,
			)
		}

		val, err := rawValue(raw)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: key %s: %w", errCtx, key, err,
			)
		}

		entries = append(entries, properties.Entry{
			Name:  key,
			Value: val,
		})
	}

	if tok, err = dec.Token(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if tok != json.Delim('}') {
		return nil, fmt.Errorf("%s: unexpected token %v", errCtx, tok)
	}

	return entries, nil
}

// rawValue maps a raw member value to its stored form: strings are
// unquoted, numbers stay json.Number, objects and arrays become their
// compact text.
func rawValue(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}

		return s, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}

		return buf.String(), nil
	case 't':
		return true, nil
	case 'f':
		return false, nil
	case 'n':
		return nil, nil
	}

	return json.Number(raw), nil
}
