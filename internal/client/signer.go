package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// RequestPath is the signer endpoint relative to the signer URL
	RequestPath = "/request"

	maxResponseBytes = 1 << 20
)

// SignerRequest is the body sent to the signer
type SignerRequest struct {
	Value  string `json:"value"`
	Method string `json:"method"`
}

// SignerResponse is the body returned by the signer.
// Result is a decimal string; a bare JSON number is accepted as well.
type SignerResponse struct {
	Result Decimal `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Decimal unmarshals from either a JSON string or a JSON number
type Decimal string

// UnmarshalJSON implements json.Unmarshaler
func (d *Decimal) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("result must be a string or number: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

// SignerClient is the HTTP transport to a signer service
type SignerClient struct {
	client *http.Client
}

// NewSignerClient creates a new signer client
func NewSignerClient(timeout time.Duration) *SignerClient {
	return &SignerClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// LoadSignerClient returns a Loader producing the HTTP signer module
func LoadSignerClient(timeout time.Duration) Loader {
	return func() (Module, error) {
		if timeout <= 0 {
			return nil, errors.New("signer timeout must be positive")
		}
		return NewSignerClient(timeout), nil
	}
}

// RequestFromSigner asks the signer at signerURL to evaluate method on value
func (c *SignerClient) RequestFromSigner(ctx context.Context, value, method, signerURL string) (string, error) {
	endpoint, err := SignerEndpoint(signerURL)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(SignerRequest{Value: value, Method: method})
	if err != nil {
		return "", fmt.Errorf("failed to marshal signer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create signer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach signer: %w", err)
	}
	defer resp.Body.Close()

	var signerResp SignerResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&signerResp)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && signerResp.Error != "" {
			return "", fmt.Errorf("signer returned status %d: %s", resp.StatusCode, signerResp.Error)
		}
		return "", fmt.Errorf("signer returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode signer response: %w", decodeErr)
	}
	if signerResp.Error != "" {
		return "", fmt.Errorf("signer error: %s", signerResp.Error)
	}
	if signerResp.Result == "" {
		return "", errors.New("signer returned empty result")
	}

	return string(signerResp.Result), nil
}

// SignerEndpoint validates signerURL and returns the request endpoint
func SignerEndpoint(signerURL string) (string, error) {
	signerURL = strings.TrimSpace(signerURL)
	if signerURL == "" {
		return "", errors.New("signer URL is empty")
	}
	u, err := url.Parse(signerURL)
	if err != nil {
		return "", fmt.Errorf("invalid signer URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid signer URL %q: scheme must be http or https", signerURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid signer URL %q: missing host", signerURL)
	}
	return u.JoinPath(RequestPath).String(), nil
}
