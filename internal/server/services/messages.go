package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/logging"
	"github.com/dmitrijs2005/toldya/internal/server/metrics"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMessageInput is a create request as decoded from the wire.
//
// RevealTime is kept raw so that numbers, numeric strings and null can be told
// apart; see parseRevealTime.
type CreateMessageInput struct {
	Name       string          `validate:"required,max=32"`
	Subject    string          `validate:"required,max=150"`
	Message    string          `validate:"required,max=1024"`
	RevealTime json.RawMessage `validate:"-"`
}

// MessageService implements message creation and retrieval on top of a
// messages.Repository.
type MessageService struct {
	repo     messages.Repository
	log      logging.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// Option customizes a MessageService.
type Option func(*MessageService)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MessageService) { s.now = now }
}

// WithIDGenerator replaces the UUIDv4 id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *MessageService) { s.newID = newID }
}

func NewMessageService(repo messages.Repository, log logging.Logger, opts ...Option) *MessageService {
	s := &MessageService{
		repo:     repo,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in, stores a new message and returns its id.
//
// Validation errors wrap common.ErrorValidation and are returned before the
// store is touched. Store failures are logged and reported as
// common.ErrorInternal.
func (s *MessageService) Create(ctx context.Context, in CreateMessageInput) (string, error) {
	s.log.Info(ctx, "create message received")

	revealTime, err := s.validateCreate(in)
	if err != nil {
		s.log.Warn(ctx, "create message rejected", "error", err)
		metrics.Requests.WithLabelValues("create", "invalid").Inc()
		return "", err
	}

	id := s.newID()
	m := models.NewMessage(id, in.Name, in.Subject, in.Message, revealTime, s.now())

	if err := s.repo.Put(ctx, m); err != nil {
		s.log.Error(ctx, "create message failed", "message_id", id, "error", err)
		metrics.Requests.WithLabelValues("create", "error").Inc()
		return "", common.ErrorInternal
	}

	s.log.Info(ctx, "message created", "message_id", id, "reveal_time", revealTime)
	metrics.Requests.WithLabelValues("create", "created").Inc()
	return id, nil
}

// validateCreate checks presence of all fields first, then lengths, then
// that revealTime is numeric.
func (s *MessageService) validateCreate(in CreateMessageInput) (int64, error) {
	reveal, present := revealTimeToken(in.RevealTime)

	err := s.validate.Struct(in)
	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return 0, err
	}

	if !present {
		return 0, common.ErrMissingFields
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return 0, common.ErrMissingFields
		}
	}
	if len(verrs) > 0 {
		return 0, common.ErrFieldLengthExceeded
	}

	return parseRevealTime(reveal)
}

// revealTimeToken unwraps raw into the text to parse. Values that Present
// rejects count as not given. Strings are trimmed of surrounding spaces.
func revealTimeToken(raw json.RawMessage) (string, bool) {
	if !Present(raw) {
		return "", false
	}

	raw = bytes.TrimSpace(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s), true
		}
	}
	return string(raw), true
}

var (
	minRevealTime = decimal.NewFromInt(math.MinInt64)
	maxRevealTime = decimal.NewFromInt(math.MaxInt64)
)

// parseRevealTime converts a decimal literal to unix seconds, truncating any
// fractional part toward zero. Values outside int64 are rejected.
func parseRevealTime(token string) (int64, error) {
	d, err := decimal.NewFromString(token)
	if err != nil {
		return 0, common.ErrInvalidRevealTime
	}
	d = d.Truncate(0)
	if d.LessThan(minRevealTime) || d.GreaterThan(maxRevealTime) {
		return 0, common.ErrInvalidRevealTime
	}
	return d.IntPart(), nil
}

// Get returns the message as seen now. The body is withheld until the reveal
// time, inclusive.
func (s *MessageService) Get(ctx context.Context, id string) (*models.View, error) {
	s.log.Info(ctx, "get message received", "message_id", id)

	if id == "" {
		s.log.Warn(ctx, "get message rejected", "error", common.ErrMissingMessageID)
		metrics.Requests.WithLabelValues("get", "invalid").Inc()
		return nil, common.ErrMissingMessageID
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "message not found", "message_id", id)
			metrics.Requests.WithLabelValues("get", "not_found").Inc()
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "get message failed", "message_id", id, "error", err)
		metrics.Requests.WithLabelValues("get", "error").Inc()
		return nil, common.ErrorInternal
	}

	view := m.ViewAt(s.now())
	revealed := view.Body != nil
	s.log.Info(ctx, "message retrieved", "message_id", id, "revealed", revealed)
	if revealed {
		metrics.Requests.WithLabelValues("get", "revealed").Inc()
	} else {
		metrics.Requests.WithLabelValues("get", "hidden").Inc()
	}
	return view, nil
}
