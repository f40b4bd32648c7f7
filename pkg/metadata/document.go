package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NewCollectionDocument builds the document describing a collection.
func NewCollectionDocument(name string, description string, imageURI string, contentType string) Document {
	return Document{
		Name:        name,
		Description: description,
		Image:       imageURI,
		Type:        contentType,
	}
}

// NewAssetDocument builds the document describing one minted asset.
func NewAssetDocument(name string, description string, imageURI string, contentType string) Document {
	return Document{
		Name:        name,
		Description: description,
		Image:       imageURI,
		Type:        contentType,
		Files: []File{
			{URI: imageURI, Type: contentType},
		},
		Properties: &Properties{Category: CategoryImage},
	}
}

// Encode serializes a document without HTML escaping.
func Encode(document Document) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(document); err != nil {
		return nil, fmt.Errorf("failed to encode metadata document: %w", err)
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// Name returns the top-level name of a metadata document. A document without a
// string name yields an empty result.
func Name(document []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(document, &fields); err != nil {
		return "", fmt.Errorf("metadata document is not a JSON object: %w", err)
	}
	raw, ok := fields["name"]
	if !ok {
		return "", nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", nil
	}
	return name, nil
}

// NormalizeName trims surrounding whitespace and applies Unicode NFC.
func NormalizeName(name string) (string, error) {
	normalized := norm.NFC.String(strings.TrimSpace(name))
	if normalized == "" {
		return "", ErrEmptyName
	}
	return normalized, nil
}

func encodeString(value string) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
