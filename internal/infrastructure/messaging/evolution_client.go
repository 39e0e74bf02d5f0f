package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GatewayConfig locates one Evolution API instance
type GatewayConfig struct {
	BaseURL  string
	APIKey   string
	Instance string
}

// Configured reports whether a base URL is set
func (g GatewayConfig) Configured() bool {
	return strings.TrimSpace(g.BaseURL) != ""
}

// Sender delivers one text message to a WhatsApp number
type Sender interface {
	Send(ctx context.Context, gw GatewayConfig, number, text string) error
}

// EvolutionClient posts to the Evolution API sendText endpoint
type EvolutionClient struct {
	httpClient *http.Client
}

// NewEvolutionClient creates a client; timeout bounds every call
func NewEvolutionClient(timeout time.Duration) *EvolutionClient {
	return &EvolutionClient{httpClient: &http.Client{Timeout: timeout}}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Send performs a single POST; there is no retry
func (c *EvolutionClient) Send(ctx context.Context, gw GatewayConfig, number, text string) error {
	if !gw.Configured() {
		return fmt.Errorf("gateway url not configured")
	}

	body, err := json.Marshal(sendTextRequest{Number: number, Text: text})
	if err != nil {
		return err
	}

	endpoint := strings.TrimRight(gw.BaseURL, "/") + "/message/sendText/" + url.PathEscape(gw.Instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", gw.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
