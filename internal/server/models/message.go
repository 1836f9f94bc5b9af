// Package models holds the server-side records of toldya.
package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Field limits, counted in Unicode code points.
const (
	MaxNameLength    = 32
	MaxSubjectLength = 150
	MaxMessageLength = 1024
)

// Message is a stored time capsule. Every field is immutable once written.
//
// RevealTime and CreateTime are unix seconds. Stores that keep numbers as
// arbitrary-precision decimals hand them back unchanged, hence decimal.
type Message struct {
	ID         string
	Name       string
	Subject    string
	Body       string
	RevealTime decimal.Decimal
	CreateTime decimal.Decimal
}

// NewMessage builds a record created at createdAt.
func NewMessage(id, name, subject, body string, revealTime int64, createdAt time.Time) *Message {
	return &Message{
		ID:         id,
		Name:       name,
		Subject:    subject,
		Body:       body,
		RevealTime: decimal.NewFromInt(revealTime),
		CreateTime: decimal.NewFromInt(createdAt.Unix()),
	}
}

// RevealedAt reports whether the body is readable at now. The boundary is
// inclusive: at exactly RevealTime the message is revealed.
func (m *Message) RevealedAt(now time.Time) bool {
	return decimal.NewFromInt(now.Unix()).Cmp(m.RevealTime) >= 0
}

// View is what a reader sees. Body is nil while the message is hidden.
type View struct {
	Name       string
	Subject    string
	RevealTime decimal.Decimal
	CreateTime decimal.Decimal
	Body       *string
}

// ViewAt projects m as seen at now. It never mutates m.
func (m *Message) ViewAt(now time.Time) *View {
	v := &View{
		Name:       m.Name,
		Subject:    m.Subject,
		RevealTime: m.RevealTime,
		CreateTime: m.CreateTime,
	}
	if m.RevealedAt(now) {
		body := m.Body
		v.Body = &body
	}
	return v
}

// JSONNumber renders d as a plain JSON integer when it is whole and as a
// floating-point number otherwise.
func JSONNumber(d decimal.Decimal) json.Number {
	if d.IsInteger() {
		return json.Number(d.String())
	}
	return json.Number(strconv.FormatFloat(d.InexactFloat64(), 'f', -1, 64))
}
