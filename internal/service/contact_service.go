package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

// ContactService forwards contact form messages to the form relay. Only the
// relay's status code is consumed.
type ContactService struct {
	relayURL  string
	client    *http.Client
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService. A nil client gets one with
// the given timeout.
func NewContactService(relayURL string, timeout time.Duration, client *http.Client, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{relayURL: relayURL, client: client, metrics: metrics, validator: validate, logger: logger}
}

// Send validates msg and posts it to the relay.
func (s *ContactService) Send(ctx context.Context, msg models.ContactMessage) error {
	err := s.send(ctx, msg)
	s.metrics.RecordFormSubmission("contact", err)
	return err
}

func (s *ContactService) send(ctx context.Context, msg models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	if err := s.validator.Struct(msg); err != nil {
		return appErrors.Validation(err, "invalid contact message")
	}
	if s.relayURL == "" {
		return appErrors.Clone(appErrors.ErrUpstream, "contact relay not configured")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return appErrors.Internal(err, "failed to encode message")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.relayURL, bytes.NewReader(body))
	if err != nil {
		return appErrors.Internal(err, "failed to build relay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("contact relay unreachable", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to send message")
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("contact relay rejected message", zap.Int("status", resp.StatusCode))
		return appErrors.Wrap(fmt.Errorf("relay responded %d", resp.StatusCode), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to send message")
	}
	s.logger.Info("contact message relayed", zap.String("subject", msg.Subject))
	return nil
}
