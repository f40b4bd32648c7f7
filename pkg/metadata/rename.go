package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type span struct {
	start int64
	end   int64
}

// ReplaceName returns document with every top-level "name" value replaced by
// name. All other bytes, including key order, spacing and unknown fields, are
// left untouched. When the document has no name, one is inserted as the first
// member.
func ReplaceName(document []byte, name string) ([]byte, error) {
	encodedName, err := encodeString(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode name: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("metadata document is not a JSON object: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("metadata document is not a JSON object")
	}
	openOffset := decoder.InputOffset()

	spans := make([]span, 0, 1)
	members := 0
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata key: %w", err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected metadata key %v", keyToken)
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to read metadata value for %q: %w", key, err)
		}
		members++

		if key == "name" {
			end := decoder.InputOffset()
			spans = append(spans, span{start: end - int64(len(value)), end: end})
		}
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of metadata document: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected content after metadata document")
	}

	if len(spans) == 0 {
		inserted := append([]byte(`"name":`), encodedName...)
		if members > 0 {
			inserted = append(inserted, ',')
		}
		return splice(document, span{start: openOffset, end: openOffset}, inserted), nil
	}

	result := document
	for index := len(spans) - 1; index >= 0; index-- {
		result = splice(result, spans[index], encodedName)
	}
	return result, nil
}

func splice(document []byte, target span, replacement []byte) []byte {
	result := make([]byte, 0, len(document)-int(target.end-target.start)+len(replacement))
	result = append(result, document[:target.start]...)
	result = append(result, replacement...)
	result = append(result, document[target.end:]...)
	return result
}
