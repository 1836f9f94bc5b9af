package messages

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/metrics"
	"github.com/dmitrijs2005/toldya/internal/server/models"
)

// InstrumentedRepository records the latency of every store call.
type InstrumentedRepository struct {
	next    Repository
	backend string
}

func NewInstrumentedRepository(next Repository, backend string) *InstrumentedRepository {
	return &InstrumentedRepository{next: next, backend: backend}
}

func (r *InstrumentedRepository) Put(ctx context.Context, m *models.Message) error {
	start := time.Now()
	err := r.next.Put(ctx, m)
	r.observe("put", start, err)
	return err
}

func (r *InstrumentedRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	start := time.Now()
	m, err := r.next.Get(ctx, id)
	r.observe("get", start, err)
	return m, err
}

func (r *InstrumentedRepository) observe(op string, start time.Time, err error) {
	metrics.StoreDuration.
		WithLabelValues(r.backend, op, resultLabel(err)).
		Observe(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrorNotFound):
		return "not_found"
	default:
		return "error"
	}
}
