package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// Millis is a timestamp serialized as epoch milliseconds in JSON, matching
// the wire format the tracker's clients expect, while stored as a regular
// timestamp in the database.
type Millis time.Time

// NowMillis returns the current time as a Millis, truncated to millisecond
// precision so values round-trip through JSON unchanged.
func NowMillis() Millis {
	return Millis(time.Now().UTC().Truncate(time.Millisecond))
}

// Time converts back to a time.Time.
func (m Millis) Time() time.Time {
	return time.Time(m)
}

// IsZero reports whether the timestamp is unset.
func (m Millis) IsZero() bool {
	return time.Time(m).IsZero()
}

// MarshalJSON encodes the timestamp as an integer of epoch milliseconds.
func (m Millis) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, time.Time(m).UnixMilli(), 10), nil
}

// UnmarshalJSON accepts epoch milliseconds.
func (m *Millis) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse millis timestamp: %w", err)
	}
	*m = Millis(time.UnixMilli(ms).UTC())
	return nil
}

// Value implements driver.Valuer for database storage.
func (m Millis) Value() (driver.Value, error) {
	return time.Time(m), nil
}

// Scan implements sql.Scanner for database retrieval.
func (m *Millis) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = Millis{}
		return nil
	case time.Time:
		*m = Millis(v.UTC())
		return nil
	case int64:
		*m = Millis(time.UnixMilli(v).UTC())
		return nil
	default:
		return fmt.Errorf("scan millis: unsupported type %T", value)
	}
}
