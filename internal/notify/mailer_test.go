package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sahnico/taxcalc/internal/config"
	"github.com/sahnico/taxcalc/internal/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testEmailSettings(endpoint string) config.EmailSettings {
	return config.EmailSettings{
		Enabled:           true,
		Endpoint:          endpoint,
		ServiceID:         "svc_test",
		ContactTemplateID: "tpl_contact",
		PublicKey:         "pk_test",
		PrivateKey:        "sk_test",
		AdminEmail:        "admin@sahnico.com",
		Timeout:           2 * time.Second,
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
	}
}

func newTestClient(endpoint string, logger *zap.Logger) *EmailJSClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := testEmailSettings(endpoint)
	return NewEmailJSClient(&http.Client{Timeout: settings.Timeout}, settings, resilience.NewCircuitBreaker("test"), logger)
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	m := New(config.EmailSettings{}, nil)
	err := m.Send(context.Background(), "tpl", map[string]string{"to_email": "a@b.com"})
	assert.ErrorIs(t, err, ErrEmailDisabled)

	_, ok := New(testEmailSettings("http://localhost"), nil).(*EmailJSClient)
	assert.True(t, ok)
}

func TestEmailJSClient_SendsPayload(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	c := newTestClient(srv.URL, zap.New(core))

	err := c.Send(context.Background(), "tpl_contact", map[string]string{"to_email": "client@example.com", "message": "hi"})
	require.NoError(t, err)

	assert.Equal(t, "svc_test", got.ServiceID)
	assert.Equal(t, "tpl_contact", got.TemplateID)
	assert.Equal(t, "pk_test", got.UserID)
	assert.Equal(t, "sk_test", got.AccessToken)
	assert.Equal(t, "hi", got.TemplateParams["message"])
	assert.Equal(t, 1, logs.FilterMessage("email sent").Len())
}

func TestEmailJSClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, nil).Send(context.Background(), "tpl", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestEmailJSClient_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	core, logs := observer.New(zap.ErrorLevel)
	err := newTestClient(srv.URL, zap.New(core)).Send(context.Background(), "tpl", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var ext *ErrExternalService
	require.True(t, errors.As(err, &ext))
	assert.Equal(t, "emailjs", ext.Service)

	var status *StatusError
	require.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusBadRequest, status.StatusCode)
	assert.Contains(t, status.Body, "template ID")

	assert.Equal(t, 1, logs.FilterField(zap.String("op", "notify.EmailJSClient.Send")).Len())
}

func TestEmailJSClient_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, nil).Send(context.Background(), "tpl", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "initial attempt plus two retries")
}

func TestEmailJSClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newTestClient(srv.URL, nil).Send(ctx, "tpl", map[string]string{})
	assert.ErrorIs(t, err, context.Canceled)
}
