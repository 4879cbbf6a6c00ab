package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

func sampleContact() models.ContactMessage {
	return models.ContactMessage{Name: "Karan", Email: "karan@example.com", Subject: "Sponsorship", Message: "How do we sponsor?"}
}

func TestContactServiceSendPostsJSON(t *testing.T) {
	var received models.ContactMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewContactService(server.URL, time.Second, server.Client(), nil, nil, zap.NewNop())
	require.NoError(t, svc.Send(context.Background(), sampleContact()))
	assert.Equal(t, sampleContact(), received)
}

func TestContactServiceRelayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	svc := NewContactService(server.URL, time.Second, server.Client(), NewMetricsService(), nil, nil)
	err := svc.Send(context.Background(), sampleContact())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
	assert.Equal(t, http.StatusBadGateway, appErrors.FromError(err).Status)
}

func TestContactServiceValidatesBeforeSending(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewContactService(server.URL, time.Second, server.Client(), nil, nil, nil)
	msg := sampleContact()
	msg.Email = "not-an-email"
	err := svc.Send(context.Background(), msg)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, calls)
}

func TestContactServiceUnconfiguredRelay(t *testing.T) {
	svc := NewContactService("", time.Second, nil, nil, nil, nil)
	err := svc.Send(context.Background(), sampleContact())
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
}
