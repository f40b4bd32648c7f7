package metadata

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewAssetDocumentShape(t *testing.T) {
	document := NewAssetDocument("My NFT #1", "Minted into a collection.", "hcs://1/0.0.5", ContentTypePNG)

	encoded, err := Encode(document)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded["name"] != "My NFT #1" {
		t.Fatalf("unexpected name: %v", decoded["name"])
	}
	files, ok := decoded["files"].([]any)
	if !ok || len(files) != 1 {
		t.Fatalf("unexpected files: %v", decoded["files"])
	}
	file := files[0].(map[string]any)
	if file["uri"] != "hcs://1/0.0.5" || file["type"] != ContentTypePNG {
		t.Fatalf("unexpected file entry: %v", file)
	}
	properties := decoded["properties"].(map[string]any)
	if properties["category"] != CategoryImage {
		t.Fatalf("unexpected category: %v", properties["category"])
	}
}

func TestNewCollectionDocumentOmitsAssetFields(t *testing.T) {
	encoded, err := Encode(NewCollectionDocument("My Collection", "", "https://cdn.example.com/c.png", ContentTypePNG))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"name":"My Collection","image":"https://cdn.example.com/c.png","type":"image/png"}`
	if string(encoded) != expected {
		t.Fatalf("unexpected document: %s", encoded)
	}
}

func TestName(t *testing.T) {
	name, err := Name([]byte(`{"name":"Current","image":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Current" {
		t.Fatalf("unexpected name: %q", name)
	}

	missing, err := Name([]byte(`{"image":"x"}`))
	if err != nil || missing != "" {
		t.Fatalf("expected empty name, got %q (%v)", missing, err)
	}

	if _, err := Name([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid document")
	}
}

func TestNormalizeName(t *testing.T) {
	normalized, err := NormalizeName("  Cafe\u0301  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized != "Caf\u00e9" {
		t.Fatalf("expected NFC form, got %q", normalized)
	}

	if _, err := NormalizeName(" \t\n "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}
