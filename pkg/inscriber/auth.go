package inscriber

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultAuthBaseURL = "https://kiloscribe.com"

// MessageSigner signs the authentication challenge.
type MessageSigner interface {
	Sign(message []byte) []byte
}

type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	normalizedBaseURL := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	normalizedBaseURL = strings.TrimSuffix(normalizedBaseURL, "/api")
	if normalizedBaseURL == "" {
		normalizedBaseURL = DefaultAuthBaseURL
	}

	return &AuthClient{
		baseURL:    normalizedBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type authData struct {
	ID        string  `json:"id"`
	Signature string  `json:"signature"`
	Data      any     `json:"data"`
	Network   Network `json:"network"`
}

type authenticateRequest struct {
	AuthData authData `json:"authData"`
	Include  string   `json:"include"`
}

type authenticateResponse struct {
	APIKey string `json:"apiKey"`
	User   struct {
		SessionToken string `json:"sessionToken"`
	} `json:"user"`
}

// Authenticate exchanges a signed challenge for an API key. The account ID is
// the holder the challenge is issued to.
func (c *AuthClient) Authenticate(
	ctx context.Context,
	accountID string,
	signer MessageSigner,
	network Network,
) (AuthResult, error) {
	if strings.TrimSpace(accountID) == "" {
		return AuthResult{}, fmt.Errorf("account ID is required")
	}
	if signer == nil {
		return AuthResult{}, fmt.Errorf("signer is required")
	}

	var challenge struct {
		Message json.RawMessage `json:"message"`
	}
	if err := c.exchange(ctx, http.MethodGet, "/api/auth/request-signature", accountID, nil, &challenge); err != nil {
		return AuthResult{}, fmt.Errorf("failed to request signature challenge: %w", err)
	}
	if len(challenge.Message) == 0 {
		return AuthResult{}, fmt.Errorf("signature challenge did not include message")
	}

	signingPayload, echoed, err := challengePayload(challenge.Message)
	if err != nil {
		return AuthResult{}, err
	}

	request := authenticateRequest{
		AuthData: authData{
			ID:        accountID,
			Signature: hex.EncodeToString(signer.Sign([]byte(signingPayload))),
			Data:      echoed,
			Network:   network,
		},
		Include: "apiKey",
	}
	var response authenticateResponse
	if err := c.exchange(ctx, http.MethodPost, "/api/auth/authenticate", "", request, &response); err != nil {
		return AuthResult{}, fmt.Errorf("failed to authenticate inscription API client: %w", err)
	}

	switch {
	case strings.TrimSpace(response.User.SessionToken) == "":
		return AuthResult{}, fmt.Errorf("authenticate response did not include session token")
	case strings.TrimSpace(response.APIKey) == "":
		return AuthResult{}, fmt.Errorf("authenticate response did not include api key")
	}
	return AuthResult{APIKey: response.APIKey}, nil
}

// exchange sends payload, when non-nil, as JSON and decodes the response into
// target.
func (c *AuthClient) exchange(ctx context.Context, method string, path string, session string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		request.Header.Set("x-session", session)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, response.StatusCode, strings.TrimSpace(string(responseBody)))
	}
	if err := json.Unmarshal(responseBody, target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// challengePayload returns the bytes to sign and the value echoed back as
// authData.data. Object challenges are signed in their compact JSON form.
func challengePayload(raw json.RawMessage) (string, any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil, fmt.Errorf("signature challenge message cannot be empty")
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", nil, fmt.Errorf("failed to decode string challenge: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", nil, fmt.Errorf("signature challenge string cannot be empty")
		}
		return text, text, nil
	}

	var object any
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return "", nil, fmt.Errorf("failed to decode object challenge: %w", err)
	}
	compact, err := json.Marshal(object)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode object challenge: %w", err)
	}
	return string(compact), object, nil
}
