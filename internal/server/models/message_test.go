package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealedAt_InclusiveBoundary(t *testing.T) {
	m := NewMessage("id", "A", "S", "secret", 1_700_000_000, time.Unix(1_600_000_000, 0))

	assert.False(t, m.RevealedAt(time.Unix(1_699_999_999, 0)))
	assert.True(t, m.RevealedAt(time.Unix(1_700_000_000, 0)))
	assert.True(t, m.RevealedAt(time.Unix(1_700_000_001, 0)))
}

func TestRevealedAt_FractionalRevealTime(t *testing.T) {
	m := &Message{RevealTime: decimal.RequireFromString("100.5")}

	assert.False(t, m.RevealedAt(time.Unix(100, 0)))
	assert.True(t, m.RevealedAt(time.Unix(101, 0)))
}

func TestViewAt(t *testing.T) {
	created := time.Unix(1_600_000_000, 0)
	m := NewMessage("id", "A", "S", "secret", 1_700_000_000, created)

	hidden := m.ViewAt(time.Unix(1_699_999_999, 0))
	assert.Nil(t, hidden.Body)
	assert.Equal(t, "A", hidden.Name)
	assert.Equal(t, "S", hidden.Subject)
	assert.True(t, hidden.RevealTime.Equal(decimal.NewFromInt(1_700_000_000)))
	assert.True(t, hidden.CreateTime.Equal(decimal.NewFromInt(created.Unix())))

	shown := m.ViewAt(time.Unix(1_700_000_000, 0))
	require.NotNil(t, shown.Body)
	assert.Equal(t, "secret", *shown.Body)

	*shown.Body = "changed"
	assert.Equal(t, "secret", m.Body, "views must not alias the record")
}

func TestJSONNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1700000000", "1700000000"},
		{"1700000000.000", "1700000000"},
		{"-5", "-5"},
		{"0", "0"},
		{"1.5", "1.5"},
		{"1700000000.25", "1700000000.25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := JSONNumber(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, n.String())

			b, err := json.Marshal(struct {
				V json.Number `json:"v"`
			}{n})
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":`+tt.want+`}`, string(b))
		})
	}
}
