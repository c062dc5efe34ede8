package shared

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date serialised as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate builds a UTC calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("data inválida: %s", data)
	}
	t, err := time.Parse(DateLayout, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("data inválida, use o formato AAAA-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}
