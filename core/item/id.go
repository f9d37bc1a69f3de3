package item

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ID identifies a catalog entry. The catalog hands out either integer or
// string ids and both survive a JSON round trip in their original shape.
// Two ids are equal only when both the text and the shape match, so the
// integer 1 and the string "1" are different entries.
type ID struct {
	raw     string
	numeric bool
}

func IntID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), numeric: true}
}

func StringID(s string) ID {
	return ID{raw: s}
}

// ParseID reads an id from a URL segment or form value. Integer values
// become integer ids in canonical form, so "007" is IntID(7).
func ParseID(s string) ID {
	if s == "" {
		return ID{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n)
	}
	return ID{raw: s}
}

func (id ID) String() string { return id.raw }

func (id ID) IsZero() bool { return id.raw == "" }

func (id ID) Numeric() bool { return id.numeric }

func (id ID) Equal(o ID) bool { return id == o }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*id = ID{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	v, err := integral(n)
	if err != nil {
		return err
	}
	*id = IntID(v)
	return nil
}

// integral accepts numbers with no fractional part, such as 7, 7.0 or 7e0.
func integral(n json.Number) (int64, error) {
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("numeric id %s is not an integer", n)
	}
	return int64(f), nil
}

// Scan lets ids come straight out of a database column.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ID{}
	case int64:
		*id = IntID(v)
	case string:
		*id = ParseID(v)
	case []byte:
		*id = ParseID(string(v))
	default:
		return errors.New("unsupported id column type")
	}
	return nil
}

func (id ID) Value() (driver.Value, error) {
	if id.raw == "" {
		return nil, nil
	}
	return id.raw, nil
}
