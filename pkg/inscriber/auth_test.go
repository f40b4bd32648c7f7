package inscriber

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

func TestNewAuthClient(t *testing.T) {
	if NewAuthClient("").baseURL != DefaultAuthBaseURL {
		t.Fatal("expected default URL")
	}
	if NewAuthClient(" https://custom.com/api/ ").baseURL != "https://custom.com" {
		t.Fatal("expected trailing slash and /api removed")
	}
}

func TestChallengePayload(t *testing.T) {
	payload, data, err := challengePayload(json.RawMessage(`"hello"`))
	if err != nil || payload != "hello" || data != "hello" {
		t.Fatal("expected hello string")
	}

	if _, _, err := challengePayload(json.RawMessage(`""`)); err == nil {
		t.Fatal("expected empty string err")
	}

	payload, data, err = challengePayload(json.RawMessage(`{ "b": 2, "a": 1 }`))
	if err != nil || data == nil {
		t.Fatal("expected object challenge")
	}
	if payload != `{"a":1,"b":2}` {
		t.Fatalf("expected compact sorted payload, got %s", payload)
	}

	if _, _, err := challengePayload(json.RawMessage(``)); err == nil {
		t.Fatal("expected empty err")
	}
}

func TestAuthenticateSignsChallenge(t *testing.T) {
	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	var authData map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/request-signature", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-session") != "0.0.42" {
			t.Errorf("unexpected session header: %q", r.Header.Get("x-session"))
		}
		w.Write([]byte(`{"message": "test-challenge"}`))
	})
	mux.HandleFunc("/api/auth/authenticate", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		authData, _ = body["authData"].(map[string]any)
		w.Write([]byte(`{"apiKey": "secret-key", "user": {"sessionToken": "token"}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := NewAuthClient(server.URL).Authenticate(context.Background(), "0.0.42", privateKey, NetworkTestnet)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if result.APIKey != "secret-key" {
		t.Fatalf("unexpected api key: %s", result.APIKey)
	}

	signature, err := hex.DecodeString(authData["signature"].(string))
	if err != nil {
		t.Fatalf("signature is not hex: %v", err)
	}
	if !privateKey.PublicKey().Verify([]byte("test-challenge"), signature) {
		t.Fatal("signature did not verify")
	}
	if authData["network"] != "testnet" || authData["id"] != "0.0.42" {
		t.Fatalf("unexpected auth data: %#v", authData)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	privateKey, _ := hedera.PrivateKeyGenerateEd25519()

	if _, err := NewAuthClient("").Authenticate(context.Background(), "", privateKey, NetworkTestnet); err == nil {
		t.Fatal("expected error without account")
	}
	if _, err := NewAuthClient("").Authenticate(context.Background(), "0.0.1", nil, NetworkTestnet); err == nil {
		t.Fatal("expected error without signer")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/request-signature", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "challenge"}`))
	})
	mux.HandleFunc("/api/auth/authenticate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"apiKey": "secret-key", "user": {}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	if _, err := NewAuthClient(server.URL).Authenticate(context.Background(), "0.0.1", privateKey, NetworkTestnet); err == nil {
		t.Fatal("expected error for missing session token")
	}

	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer rejecting.Close()

	if _, err := NewAuthClient(rejecting.URL).Authenticate(context.Background(), "0.0.1", privateKey, NetworkTestnet); err == nil {
		t.Fatal("expected error for rejected challenge request")
	}
}
