package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHitPayCreatePaymentRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment-requests" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-BUSINESS-API-KEY"); got != "api-key" {
			t.Errorf("missing api key header, got %q", got)
		}

		var req GatewayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Amount != 50 || req.Currency != "SGD" {
			t.Errorf("unexpected request %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GatewayPaymentRequest{
			ID:              "hp_abc",
			URL:             "https://pay.test/hp_abc",
			ReferenceNumber: req.ReferenceNumber,
		})
	}))
	defer srv.Close()

	c := NewHitPayClient(srv.URL, "api-key", "salt", 5*time.Second)
	out, err := c.CreatePaymentRequest(context.Background(), GatewayRequest{
		Amount:          50,
		Currency:        "SGD",
		ReferenceNumber: "ref-1",
	})
	if err != nil {
		t.Fatalf("CreatePaymentRequest returned error: %v", err)
	}
	if out.ID != "hp_abc" || out.URL == "" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestHitPayCreatePaymentRequestNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHitPayClient(srv.URL, "bad-key", "salt", 5*time.Second)
	_, err := c.CreatePaymentRequest(context.Background(), GatewayRequest{Amount: 50, Currency: "SGD"})
	if !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
}

func TestHitPayCreatePaymentRequestIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHitPayClient(srv.URL, "api-key", "salt", 5*time.Second)
	_, err := c.CreatePaymentRequest(context.Background(), GatewayRequest{Amount: 50, Currency: "SGD"})
	if !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway for incomplete body, got %v", err)
	}
}

func TestWebhookSignatureRoundTrip(t *testing.T) {
	c := NewHitPayClient("https://api.test", "api-key", "secret-salt", time.Second)
	fields := map[string]string{
		"payment_id":       "hp_1",
		"reference_number": "ref-1",
		"status":           "completed",
		"amount":           "50.00",
	}

	sig := SignWebhookFields("secret-salt", fields)
	if !c.VerifyWebhook(fields, sig) {
		t.Fatal("valid signature rejected")
	}

	// Signature covers every field, so any mutation invalidates it.
	fields["amount"] = "500.00"
	if c.VerifyWebhook(fields, sig) {
		t.Fatal("tampered payload accepted")
	}
}

func TestVerifyWebhookRejectsEmptySignature(t *testing.T) {
	c := NewHitPayClient("https://api.test", "api-key", "salt", time.Second)
	if c.VerifyWebhook(map[string]string{"status": "completed"}, "") {
		t.Fatal("empty signature accepted")
	}
}
