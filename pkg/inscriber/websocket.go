package inscriber

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	socketio "github.com/zhouhui8915/go-socket.io-client"

	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
)

type webSocketServer struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}

type webSocketServersResponse struct {
	Servers     []webSocketServer `json:"servers"`
	Recommended string            `json:"recommended"`
}

// pick returns the recommended server, else the first active one, else any.
func (r webSocketServersResponse) pick() string {
	if recommended := strings.TrimSpace(r.Recommended); recommended != "" {
		return recommended
	}
	fallback := ""
	for _, server := range r.Servers {
		address := strings.TrimSpace(server.URL)
		if address == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(server.Status), "active") {
			return address
		}
		if fallback == "" {
			fallback = address
		}
	}
	return fallback
}

func (c *Client) resolveWebSocketBaseURL(ctx context.Context) (string, error) {
	if c.webSocketBaseURL != "" {
		return normalizeWebSocketURL(c.webSocketBaseURL), nil
	}

	var response webSocketServersResponse
	if err := c.getJSON(ctx, "/inscriptions/websocket-servers", &response); err != nil {
		return "", err
	}
	address := response.pick()
	if address == "" {
		return "", fmt.Errorf("no websocket servers available")
	}
	return normalizeWebSocketURL(address), nil
}

// event is the payload of an inscription socket event.
type event map[string]any

// text returns the first non-empty value among keys, rendered as a string.
func (e event) text(keys ...string) string {
	for _, key := range keys {
		var value string
		switch typed := e[key].(type) {
		case string:
			value = typed
		case fmt.Stringer:
			value = typed.String()
		case float64:
			value = strconv.FormatFloat(typed, 'f', -1, 64)
		case int64:
			value = strconv.FormatInt(typed, 10)
		case int:
			value = strconv.Itoa(typed)
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

func (e event) number(key string) float64 {
	switch typed := e[key].(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// concerns reports whether the event refers to the transaction. An empty
// transaction ID matches every event.
func (e event) concerns(transactionID string) bool {
	if transactionID == "" {
		return true
	}
	for _, key := range []string{"jobId", "tx_id", "transactionId"} {
		if value := shared.FormatTransactionID(e.text(key)); value != "" && value == transactionID {
			return true
		}
	}
	return false
}

func (e event) job() InscriptionJob {
	return InscriptionJob{
		ID:            e.text("id"),
		Status:        e.text("status"),
		Completed:     strings.EqualFold(e.text("status"), "completed"),
		TxID:          e.text("tx_id"),
		TransactionID: e.text("transactionId"),
		TopicID:       e.text("topicId", "topic_id"),
		Error:         e.text("error"),
	}
}

func (e event) completedJob() InscriptionJob {
	job := e.job()
	job.Completed = true
	if job.Status == "" {
		job.Status = "completed"
	}
	return job
}

type socketMessage struct {
	name    string
	payload event
}

func (c *Client) waitForInscriptionWebSocket(ctx context.Context, transactionID string) (InscriptionJob, error) {
	wsURL, err := c.resolveWebSocketBaseURL(ctx)
	if err != nil {
		return InscriptionJob{}, err
	}

	socket, err := socketio.NewClient(wsURL, &socketio.Options{
		Transport: "websocket",
		Query:     map[string]string{"apiKey": c.apiKey},
		Header:    map[string][]string{"x-api-key": {c.apiKey}},
	})
	if err != nil {
		return InscriptionJob{}, fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}

	target := shared.FormatTransactionID(transactionID)
	messages := make(chan socketMessage, 32)
	deliver := func(message socketMessage) {
		select {
		case messages <- message:
		default:
		}
	}

	_ = socket.On("error", func(reason any) {
		deliver(socketMessage{name: "error", payload: event{"error": fmt.Sprintf("%v", reason)}})
	})
	for _, name := range []string{"inscription-error", "inscription-progress", "inscription-complete"} {
		_ = socket.On(name, func(payload map[string]any) {
			deliver(socketMessage{name: name, payload: event(payload)})
		})
	}

	idle := time.NewTimer(c.webSocketInactivityTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return InscriptionJob{}, ctx.Err()
		case <-idle.C:
			return InscriptionJob{}, errors.New("websocket inscription timeout")
		case message := <-messages:
			switch message.name {
			case "error", "inscription-error":
				reason := message.payload.text("error")
				if reason == "" {
					reason = "websocket inscription error"
				}
				return InscriptionJob{}, errors.New(reason)
			}

			idle.Reset(c.webSocketInactivityTimeout)
			if !message.payload.concerns(target) {
				continue
			}
			if message.name == "inscription-complete" ||
				strings.EqualFold(message.payload.text("status"), "completed") ||
				message.payload.number("progress") >= 100 {
				return message.payload.completedJob(), nil
			}
		}
	}
}

func normalizeWebSocketURL(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.String()
}
