// Package services – ReviewService
//
// This file implements star ratings with comments. A user reviews a given
// artwork at most once; the unique index on (artwork_id, user_email) is the
// source of truth, and a violation is reported as Already=true rather than
// an error.
package services

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RizBits14/creovate-server/internal/domain"
	"github.com/RizBits14/creovate-server/internal/repo"
)

const (
	minRating        = 1
	maxRating        = 5
	minCommentLength = 10
	defaultUserName  = "User"
)

// ReviewInput carries a review submission. Rating is the raw decoded JSON
// value; numbers, numeric strings and booleans are accepted.
type ReviewInput struct {
	ArtworkID string
	UserEmail string
	UserName  string
	Rating    any
	Comment   string
}

// ReviewService provides the review use-cases.
type ReviewService struct {
	Store repo.Collection[domain.Review]
	Now   func() time.Time
}

// NewReviewService constructs a ReviewService.
func NewReviewService(store repo.Collection[domain.Review]) *ReviewService {
	return &ReviewService{Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

// ListForArtwork returns the artwork's reviews newest first, or an empty
// list when artworkID is blank.
func (s *ReviewService) ListForArtwork(ctx context.Context, artworkID string) ([]domain.Review, error) {
	if artworkID == "" {
		return []domain.Review{}, nil
	}
	ctx, span := otel.Tracer("services/ReviewService").Start(ctx, "ListForArtwork")
	defer span.End()
	return s.Store.FindMany(ctx, repo.Filter{"artwork_id": artworkID}, repo.NewestFirst, 0)
}

// Create validates and stores a review. It returns the new id, or
// already=true when this user has reviewed the artwork before.
//
// Validation order: required ids, rating in [1,5], comment length.
func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (id string, already bool, err error) {
	ctx, span := otel.Tracer("services/ReviewService").Start(ctx, "Create")
	defer span.End()

	if in.ArtworkID == "" || in.UserEmail == "" {
		reviewSubmissions.WithLabelValues("invalid").Inc()
		return "", false, ErrReviewFieldsRequired
	}
	rating, ok := parseRating(in.Rating)
	if !ok {
		reviewSubmissions.WithLabelValues("invalid").Inc()
		return "", false, ErrInvalidRating
	}
	comment := normalizeText(in.Comment)
	if utf8.RuneCountInString(comment) < minCommentLength {
		reviewSubmissions.WithLabelValues("invalid").Inc()
		return "", false, ErrCommentTooShort
	}
	name := in.UserName
	if name == "" {
		name = defaultUserName
	}

	r := &domain.Review{
		ID:        uuid.NewString(),
		ArtworkID: in.ArtworkID,
		UserEmail: in.UserEmail,
		UserName:  name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.Now(),
	}
	if err := s.Store.InsertOne(ctx, r); err != nil {
		if repo.IsDuplicate(err) {
			reviewSubmissions.WithLabelValues("already").Inc()
			span.SetAttributes(attribute.Bool("review.duplicate", true))
			return "", true, nil
		}
		return "", false, err
	}
	reviewSubmissions.WithLabelValues("created").Inc()
	return r.ID, false, nil
}

// parseRating converts a loosely typed rating into an integer in
// [minRating, maxRating]. Blank strings, null and false read as 0 and
// therefore fail the range check.
func parseRating(v any) (int, bool) {
	var f float64
	switch r := v.(type) {
	case nil:
		f = 0
	case float64:
		f = r
	case int:
		f = float64(r)
	case json.Number:
		n, err := r.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case bool:
		if r {
			f = 1
		}
	case string:
		t := strings.TrimSpace(r)
		if t == "" {
			f = 0
			break
		}
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || f < minRating || f > maxRating || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
