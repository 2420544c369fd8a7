package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an opaque backend-assigned identifier. The backend serializes ids
// inconsistently (JSON strings or numbers), so both forms must decode.
type ID string

// IsZero returns true if the id is unset.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both `"42"` and `42`.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Amount is a monetary value. Decoding is lenient: JSON numbers, numeric
// strings, and null/absent values are all accepted, with anything
// non-numeric coerced to zero.
type Amount float64

// UnmarshalJSON never fails on a malformed amount; it coerces to zero so a
// single bad record cannot poison a whole collection fetch.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*a = 0
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}
