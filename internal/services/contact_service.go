// Package services – ContactService
//
// This file validates contact-form submissions and stores them. Messages are
// write-only through the API: nothing lists or reads them back.
package services

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"golang.org/x/text/unicode/norm"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/repo"
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService stores contact-form messages.
type ContactService struct {
	Store repo.Collection[domain.ContactMessage]
	Now   func() time.Time
}

// NewContactService constructs a ContactService.
func NewContactService(store repo.Collection[domain.ContactMessage]) *ContactService {
	return &ContactService{Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

// Submit validates and stores a contact message. Fields are normalized
// (trimmed, NFC) before the checks and stored that way.
//
// Checks run in order and the first failure is returned:
//   - ErrNameTooShort when name has fewer than 2 characters
//   - ErrInvalidEmail when email is not of the form a@b.c
//   - ErrMessageTooShort when message has fewer than 10 characters
//
// All three wrap ErrValidation. Store failures are returned as is.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) error {
	ctx, span := otel.Tracer("services/ContactService").Start(ctx, "Submit")
	defer span.End()

	name = normalizeText(name)
	email = normalizeText(email)
	message = normalizeText(message)

	switch {
	case utf8.RuneCountInString(name) < minNameLength:
		contactSubmissions.WithLabelValues("invalid").Inc()
		return ErrNameTooShort
	case !emailRE.MatchString(email):
		contactSubmissions.WithLabelValues("invalid").Inc()
		return ErrInvalidEmail
	case utf8.RuneCountInString(message) < minMessageLength:
		contactSubmissions.WithLabelValues("invalid").Inc()
		return ErrMessageTooShort
	}

	msg := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.Now(),
	}
	if err := s.Store.InsertOne(ctx, msg); err != nil {
		return err
	}
	contactSubmissions.WithLabelValues("stored").Inc()
	return nil
}

// normalizeText trims surrounding whitespace and applies Unicode NFC so
// composed and decomposed input count the same.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
