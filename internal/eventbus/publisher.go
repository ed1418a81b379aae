// Package eventbus publishes a "registration.validated" event for each
// completed validation run, so downstream systems (member notification,
// reporting) can react without polling the validator.
package eventbus

import (
	"context"
	"time"
)

// ValidatedEvent is the payload published after a batch validation
// completes.
type ValidatedEvent struct {
	RequestID         string    `json:"request_id"`
	DBFPath           string    `json:"dbf_path"`
	RegistrationCount int       `json:"registration_count"`
	IssueCount        int       `json:"issue_count"`
	ValidatedAt       time.Time `json:"validated_at"`
}

// Publisher is the port the validation API depends on. KafkaPublisher is
// the production implementation; tests use the hand-written,
// mockgen-shaped MockPublisher.
type Publisher interface {
	PublishValidated(ctx context.Context, event ValidatedEvent) error
	Close() error
}
