package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

type GatewayRequest struct {
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	ReferenceNumber string    `json:"reference_number"`
	WebhookURL      string    `json:"webhook"`
	ExpiryDate      time.Time `json:"expiry_date"`
}

type GatewayPaymentRequest struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	ReferenceNumber string `json:"reference_number"`
}

// HitPayClient talks to the HitPay payment-request API. The embedded HTTP
// client carries the bounded timeout required for initTopUp.
type HitPayClient struct {
	baseURL string
	apiKey  string
	salt    string
	httpc   *http.Client
}

func NewHitPayClient(baseURL, apiKey, salt string, timeout time.Duration) *HitPayClient {
	return &HitPayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		salt:    salt,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *HitPayClient) CreatePaymentRequest(ctx context.Context, req GatewayRequest) (*GatewayPaymentRequest, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment-requests", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-BUSINESS-API-KEY", c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGateway, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out GatewayPaymentRequest
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}
	if out.ID == "" || out.URL == "" {
		return nil, fmt.Errorf("%w: incomplete response", ErrGateway)
	}
	return &out, nil
}

// VerifyWebhook checks the HMAC-SHA256 signature the gateway computes over
// the webhook's form fields (sorted by key, joined as key=value pairs) with
// the account salt. An unsigned or mis-signed payload must never be trusted.
func (c *HitPayClient) VerifyWebhook(fields map[string]string, signature string) bool {
	if signature == "" {
		return false
	}
	expected := SignWebhookFields(c.salt, fields)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// SignWebhookFields computes the webhook signature; shared with tests and
// any outbound simulation tooling.
func SignWebhookFields(salt string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+fields[k])
	}

	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(strings.Join(parts, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}
