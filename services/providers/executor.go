package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// unreadableBody stands in for a non-2xx body that could not be read
const unreadableBody = "Unknown error"

// Execute sends wire with client exactly once and returns the 2xx response body.
// Non-2xx statuses are reported with the status line and the raw body text.
func Execute(ctx context.Context, client *http.Client, label string, wire *WireRequest) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, wire.Method, wire.URL, bytes.NewReader(wire.Body))
	if err != nil {
		return nil, NewProviderError(label, label+" request failed", 0, err)
	}
	for k, values := range wire.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, NewProviderError(label, label+" request failed", 0, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		text := unreadableBody
		if raw, readErr := io.ReadAll(httpResp.Body); readErr == nil {
			text = string(raw)
		}
		return nil, &ProviderError{
			Provider:   label,
			Message:    fmt.Sprintf("%s API error %s: %s", label, httpResp.Status, text),
			StatusCode: httpResp.StatusCode,
			Body:       text,
		}
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewProviderError(label, "Failed to parse "+label+" response", httpResp.StatusCode, err)
	}

	return respBody, nil
}
