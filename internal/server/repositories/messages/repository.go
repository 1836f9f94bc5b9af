//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Package messages provides the message store: a key-value table of
// immutable time capsules keyed by id, with several interchangeable backends.
package messages

import (
	"context"

	"github.com/dmitrijs2005/toldya/internal/server/models"
)

// Repository is the message store contract. Both operations are single-key
// and atomic; there is no update or delete.
//
// Put fails with common.ErrorAlreadyExists if the id is taken.
// Get fails with common.ErrorNotFound if the id has no record.
type Repository interface {
	Put(ctx context.Context, m *models.Message) error
	Get(ctx context.Context, id string) (*models.Message, error)
}
