package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/PAY-123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"reference": "PAY-123",
				"amount": 250050,
				"customer": {"email": "jane@example.com"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test_secret"})
	verified, err := client.Verify(context.Background(), "PAY-123")

	require.NoError(t, err)
	assert.Equal(t, "PAY-123", verified.Reference)
	assert.Equal(t, int64(250050), verified.Amount)
	assert.Equal(t, 2500.5, verified.MajorAmount())
	assert.Equal(t, "jane@example.com", verified.CustomerEmail)
}

func TestVerify_NotSuccessful(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "gateway status abandoned",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": true, "data": {"status": "abandoned", "reference": "PAY-123", "amount": 1000}}`))
			},
		},
		{
			name: "envelope status false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
			},
		},
		{
			name: "unknown reference",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk"})
			_, err := client.Verify(context.Background(), "PAY-123")

			assert.ErrorIs(t, err, ErrPaymentNotSuccessful)
		})
	}
}

func TestVerify_Unavailable(t *testing.T) {
	t.Run("5xx answer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk"})
		_, err := client.Verify(context.Background(), "PAY-123")

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk", Timeout: 20 * time.Millisecond})
		_, err := client.Verify(context.Background(), "PAY-123")

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("undecodable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk"})
		_, err := client.Verify(context.Background(), "PAY-123")

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})
}

func TestVerify_ReferenceMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": true, "data": {"status": "success", "reference": "PAY-OTHER", "amount": 1000}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk"})
	_, err := client.Verify(context.Background(), "PAY-123")

	assert.ErrorIs(t, err, ErrReferenceMismatch)
}
