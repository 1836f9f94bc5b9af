package messages

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/shopspring/decimal"
)

// Attribute names of a stored record, shared by the document-style backends.
const (
	attrID         = "message_id"
	attrName       = "name"
	attrSubject    = "subject"
	attrMessage    = "message"
	attrRevealTime = "revealTime"
	attrCreateTime = "messageCreateTime"
)

var errMalformedRecord = errors.New("malformed record")

// record is the document form of a message. Timestamps are kept as decimal
// strings so no backend loses precision.
type record struct {
	ID         string           `json:"message_id"`
	Name       *string          `json:"name"`
	Subject    *string          `json:"subject"`
	Message    *string          `json:"message"`
	RevealTime *decimal.Decimal `json:"revealTime"`
	CreateTime *decimal.Decimal `json:"messageCreateTime"`
}

func newRecord(m *models.Message) *record {
	return &record{
		ID:         m.ID,
		Name:       &m.Name,
		Subject:    &m.Subject,
		Message:    &m.Body,
		RevealTime: &m.RevealTime,
		CreateTime: &m.CreateTime,
	}
}

func (r *record) toMessage() (*models.Message, error) {
	switch {
	case r.Name == nil:
		return nil, missingAttr(attrName)
	case r.Subject == nil:
		return nil, missingAttr(attrSubject)
	case r.Message == nil:
		return nil, missingAttr(attrMessage)
	case r.RevealTime == nil:
		return nil, missingAttr(attrRevealTime)
	case r.CreateTime == nil:
		return nil, missingAttr(attrCreateTime)
	}

	return &models.Message{
		ID:         r.ID,
		Name:       *r.Name,
		Subject:    *r.Subject,
		Body:       *r.Message,
		RevealTime: *r.RevealTime,
		CreateTime: *r.CreateTime,
	}, nil
}

func missingAttr(name string) error {
	return fmt.Errorf("%w: missing %s", errMalformedRecord, name)
}
