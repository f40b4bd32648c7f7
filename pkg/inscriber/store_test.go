package inscriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

type fakeExecutor struct {
	received [][]byte
	txID     string
	err      error
}

func (f *fakeExecutor) ExecuteBytes(_ context.Context, transactionBytes []byte) (string, error) {
	f.received = append(f.received, transactionBytes)
	if f.err != nil {
		return "", f.err
	}
	return f.txID, nil
}

func newInscriptionServer(t *testing.T, starts *int32, authCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/inscriptions/start-inscription", func(writer http.ResponseWriter, request *http.Request) {
		atomic.AddInt32(starts, 1)
		if request.Header.Get("x-api-key") != "issued-key" {
			t.Errorf("unexpected api key: %q", request.Header.Get("x-api-key"))
		}
		var body map[string]any
		_ = json.NewDecoder(request.Body).Decode(&body)
		if body["holderId"] != "0.0.1001" {
			t.Errorf("unexpected holder: %#v", body["holderId"])
		}
		_, _ = writer.Write([]byte(`{"tx_id":"0.0.1001@1700000000.000000001","transactionBytes":"AQID","status":"pending"}`))
	})
	mux.HandleFunc("/inscriptions/retrieve-inscription", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"status":"completed","topic_id":"0.0.5005"}`))
	})
	mux.HandleFunc("/api/auth/request-signature", func(writer http.ResponseWriter, request *http.Request) {
		atomic.AddInt32(authCalls, 1)
		_, _ = writer.Write([]byte(`{"message":"sign me"}`))
	})
	mux.HandleFunc("/api/auth/authenticate", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"apiKey":"issued-key","user":{"sessionToken":"session"}}`))
	})

	return httptest.NewServer(mux)
}

func TestNewStoreValidation(t *testing.T) {
	executor := &fakeExecutor{}
	if _, err := NewStore(StoreConfig{}, nil, executor); err == nil {
		t.Fatalf("expected error without account")
	}
	if _, err := NewStore(StoreConfig{AccountID: "0.0.1", APIKey: "k"}, nil, nil); err == nil {
		t.Fatalf("expected error without executor")
	}
	if _, err := NewStore(StoreConfig{AccountID: "0.0.1"}, nil, executor); err == nil {
		t.Fatalf("expected error without key or signer")
	}
	if _, err := NewStore(StoreConfig{AccountID: "0.0.1", APIKey: "k", Network: "previewnet"}, nil, executor); err == nil {
		t.Fatalf("expected error for unsupported network")
	}
}

func TestStoreUploadBinaryAuthenticatesOnce(t *testing.T) {
	var starts, authCalls int32
	server := newInscriptionServer(t, &starts, &authCalls)
	defer server.Close()

	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	executor := &fakeExecutor{txID: "0.0.1001@1700000000.000000001"}

	store, err := NewStore(StoreConfig{
		Network:        "testnet",
		AccountID:      "0.0.1001",
		BaseURL:        server.URL,
		AuthBaseURL:    server.URL,
		ConnectionMode: ConnectionModeHTTP,
		Wait:           WaitOptions{MaxAttempts: 3, Interval: time.Millisecond},
	}, privateKey, executor)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if atomic.LoadInt32(&authCalls) != 0 {
		t.Fatalf("expected no authentication before first upload")
	}

	uri, err := store.UploadBinary(context.Background(), []byte("png-bytes"), "collection.png", "")
	if err != nil {
		t.Fatalf("UploadBinary failed: %v", err)
	}
	if uri != "hcs://1/0.0.5005" {
		t.Fatalf("unexpected URI: %s", uri)
	}
	if len(executor.received) != 1 || !bytes.Equal(executor.received[0], []byte{1, 2, 3}) {
		t.Fatalf("unexpected executed bytes: %v", executor.received)
	}

	if _, err := store.UploadMetadata(context.Background(), []byte(`{"name":"x"}`)); err != nil {
		t.Fatalf("UploadMetadata failed: %v", err)
	}
	if atomic.LoadInt32(&authCalls) != 1 {
		t.Fatalf("expected a single authentication, got %d", authCalls)
	}
	if atomic.LoadInt32(&starts) != 2 {
		t.Fatalf("expected two inscriptions, got %d", starts)
	}
}

func TestStoreUploadBinaryExecutorFailure(t *testing.T) {
	var starts, authCalls int32
	server := newInscriptionServer(t, &starts, &authCalls)
	defer server.Close()

	executor := &fakeExecutor{err: errors.New("INSUFFICIENT_PAYER_BALANCE")}
	store, err := NewStore(StoreConfig{
		AccountID:      "0.0.1001",
		APIKey:         "issued-key",
		BaseURL:        server.URL,
		ConnectionMode: ConnectionModeHTTP,
	}, nil, executor)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := store.UploadBinary(context.Background(), []byte("data"), "a.png", "image/png"); err == nil {
		t.Fatalf("expected executor error")
	}
	if _, err := store.UploadBinary(context.Background(), nil, "a.png", "image/png"); err == nil {
		t.Fatalf("expected error for empty content")
	}
	if atomic.LoadInt32(&authCalls) != 0 {
		t.Fatalf("expected configured API key to skip authentication")
	}
}

func TestHRL(t *testing.T) {
	if HRL(" 0.0.12 ") != "hcs://1/0.0.12" {
		t.Fatalf("unexpected HRL: %s", HRL(" 0.0.12 "))
	}
}
