package services

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Present reports whether a JSON value counts as given. An absent value,
// null, false, "", numeric zero, [] and {} do not.
func Present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case 'n':
		return string(raw) != "null"
	case 'f':
		return string(raw) != "false"
	case 't':
		return true
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return true
		}
		return s != ""
	case '[':
		var a []json.RawMessage
		if err := json.Unmarshal(raw, &a); err != nil {
			return true
		}
		return len(a) > 0
	case '{':
		var o map[string]json.RawMessage
		if err := json.Unmarshal(raw, &o); err != nil {
			return true
		}
		return len(o) > 0
	}

	if d, err := decimal.NewFromString(string(raw)); err == nil {
		return !d.IsZero()
	}
	return true
}
