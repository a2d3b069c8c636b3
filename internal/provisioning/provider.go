// Package provisioning mirrors local identities into the external messaging
// provider. Mirroring is a best-effort side effect: tasks go through an
// asynchronous queue with retries and a bounded dead-letter log, and
// failures never reach the request that triggered them.
package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is the external messaging provider's identity contract.
type Provider interface {
	Upsert(ctx context.Context, id, displayName, imageURL string) error
}

// HTTPProvider talks to the hosted provider's user API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type upsertPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (p *HTTPProvider) Upsert(ctx context.Context, id, displayName, imageURL string) error {
	body, err := json.Marshal(upsertPayload{ID: id, Name: displayName, Image: imageURL})
	if err != nil {
		return fmt.Errorf("failed to encode upsert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/v1/users/%s", p.baseURL, id), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("upsert request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("provider returned status %d for user %s", resp.StatusCode, id)
	}
	return nil
}
