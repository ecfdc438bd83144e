// Package datetime reads booking timestamps that may arrive without a zone offset.
package datetime

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// LocalLayout is the zone-less form some clients send. Such values are read as UTC.
const LocalLayout = "2006-01-02T15:04:05"

var layouts = []string{time.RFC3339Nano, LocalLayout, "2006-01-02T15:04"}

// Time is a time.Time that also decodes zone-less JSON timestamps.
type Time struct {
	time.Time
}

func From(t time.Time) Time {
	return Time{Time: t}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("datetime: expected a JSON string, got %s", data)
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("datetime: cannot parse %q", raw)
}

// MarshalJSON always writes RFC 3339 in UTC.
func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time.UTC().MarshalJSON()
}

// Register lets validator tags such as required and gtfield see the wrapped time.Time.
func Register(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if t, ok := field.Interface().(Time); ok {
			return t.Time
		}
		return nil
	}, Time{})
}
