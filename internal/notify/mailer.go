package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sahnico/taxcalc/internal/config"
	"github.com/sahnico/taxcalc/internal/resilience"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const serviceName = "emailjs"

// Mailer sends a templated transactional email
type Mailer interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

type noopMailer struct {
	logger *zap.Logger
}

func (m noopMailer) Send(ctx context.Context, templateID string, params map[string]string) error {
	m.logger.Debug("email disabled; message dropped",
		zap.String("op", "notify.noopMailer.Send"),
		zap.String("template_id", templateID),
		zap.String("to", params["to_email"]),
	)
	return ErrEmailDisabled
}

// New returns the mailer configured by settings. When email is disabled every
// send fails with ErrEmailDisabled.
func New(settings config.EmailSettings, logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !settings.Enabled || settings.Endpoint == "" {
		return noopMailer{logger: logger}
	}
	return NewEmailJSClient(&http.Client{Timeout: settings.Timeout}, settings, resilience.NewCircuitBreaker(serviceName), logger)
}

// EmailJSClient posts templated messages to an EmailJS-compatible REST endpoint.
type EmailJSClient struct {
	httpClient *http.Client
	endpoint   string
	serviceID  string
	publicKey  string
	privateKey string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
	logger     *zap.Logger
}

// NewEmailJSClient creates a new EmailJSClient.
func NewEmailJSClient(httpClient *http.Client, settings config.EmailSettings, cb *gobreaker.CircuitBreaker, logger *zap.Logger) *EmailJSClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &EmailJSClient{
		httpClient: httpClient,
		endpoint:   settings.Endpoint,
		serviceID:  settings.ServiceID,
		publicKey:  settings.PublicKey,
		privateKey: settings.PrivateKey,
		cb:         cb,
		cfg: resilience.Config{
			MaxRetries:     settings.MaxRetries,
			InitialBackoff: settings.InitialBackoff,
		},
		bulkhead: resilience.NewBulkhead(4),
		logger:   logger,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send delivers one message with retry and circuit breaking. 4xx responses are
// not retried.
func (c *EmailJSClient) Send(ctx context.Context, templateID string, params map[string]string) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	start := time.Now()
	_, err = c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			return c.post(ctx, body)
		})
	})
	if err != nil {
		c.logger.Error("email send failed",
			zap.String("op", "notify.EmailJSClient.Send"),
			zap.String("template_id", templateID),
			zap.String("to", params["to_email"]),
			zap.Error(err),
		)
		return &ErrExternalService{Service: serviceName, Err: err}
	}

	c.logger.Info("email sent",
		zap.String("op", "notify.EmailJSClient.Send"),
		zap.String("template_id", templateID),
		zap.String("to", params["to_email"]),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (c *EmailJSClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return resilience.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(text)}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return resilience.Permanent(statusErr)
	}
	return statusErr
}
