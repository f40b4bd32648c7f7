package inscriber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveWebSocketBaseURL(t *testing.T) {
	client := &Client{webSocketBaseURL: " wss://ws.example.com/socket "}
	resolved, err := client.resolveWebSocketBaseURL(context.Background())
	if err != nil || resolved != "wss://ws.example.com/socket" {
		t.Fatalf("expected configured URL, got %q (%v)", resolved, err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/inscriptions/websocket-servers" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		_, _ = writer.Write([]byte(`{"servers":[
			{"url":"wss://down.example.com","status":"inactive"},
			{"url":"wss://up.example.com","status":"active"}
		]}`))
	}))
	defer server.Close()

	client, err = NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	resolved, err = client.resolveWebSocketBaseURL(context.Background())
	if err != nil {
		t.Fatalf("resolveWebSocketBaseURL failed: %v", err)
	}
	if resolved != "wss://up.example.com" {
		t.Fatalf("expected active server, got %q", resolved)
	}
}

func TestPickWebSocketServer(t *testing.T) {
	response := webSocketServersResponse{Servers: []webSocketServer{
		{URL: " ", Status: "active"},
		{URL: "wss://idle.example.com", Status: "inactive"},
	}}
	if got := response.pick(); got != "wss://idle.example.com" {
		t.Fatalf("expected fallback server, got %q", got)
	}

	response.Recommended = "wss://recommended.example.com"
	if got := response.pick(); got != "wss://recommended.example.com" {
		t.Fatalf("expected recommended server, got %q", got)
	}

	if got := (webSocketServersResponse{}).pick(); got != "" {
		t.Fatalf("expected no server, got %q", got)
	}
}

func TestEventConcerns(t *testing.T) {
	target := "0.0.123-1772243084-050614451"

	if !(event{"tx_id": "0.0.123@1772243084.050614451"}).concerns(target) {
		t.Fatalf("expected SDK-form tx_id to match")
	}
	if !(event{"jobId": target}).concerns(target) {
		t.Fatalf("expected jobId to match")
	}
	if (event{"transactionId": "0.0.999-1-1"}).concerns(target) {
		t.Fatalf("expected other transaction not to match")
	}
	if !(event{}).concerns("") {
		t.Fatalf("expected empty ID to match everything")
	}
}

func TestEventCompletedJob(t *testing.T) {
	job := event{"topicId": "0.0.42", "tx_id": "0.0.1-1-1"}.completedJob()
	if !job.Completed || job.Status != "completed" || job.TopicID != "0.0.42" {
		t.Fatalf("unexpected job: %+v", job)
	}

	job = event{"topic_id": "0.0.43", "status": "processing"}.job()
	if job.Completed || job.TopicID != "0.0.43" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestEventValues(t *testing.T) {
	values := event{"f": 12.5, "i": int64(7), "blank": " ", "s": "value", "p": "100", "n": 3, "bad": "x"}
	if values.text("f") != "12.5" || values.text("i") != "7" || values.text("missing") != "" {
		t.Fatalf("unexpected text results")
	}
	if values.text("blank", "s") != "value" {
		t.Fatalf("expected first non-empty value")
	}
	if values.number("p") != 100 || values.number("n") != 3 || values.number("bad") != 0 {
		t.Fatalf("unexpected number results")
	}
}
