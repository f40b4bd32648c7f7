package shared

import (
	"testing"
)

const testPrivateKey = "302e020100300506032b65700422042091132178e72057a1d7528025956fe39b0b847f200ab59b2fdd367017f3087137"

func TestParsePrivateKeyEmpty(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		if _, err := ParsePrivateKey(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParsePrivateKeyInvalid(t *testing.T) {
	if _, err := ParsePrivateKey("notavalidkey"); err == nil {
		t.Fatal("expected error for invalid key")
	}
	if _, err := ParsePrivateKey("0xinvalidhex"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

func TestParsePrivateKeyValidEd25519(t *testing.T) {
	key, err := ParsePrivateKey(testPrivateKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.String() == "" {
		t.Fatal("expected non-empty key string")
	}
}
