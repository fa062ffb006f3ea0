package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt64 accepts a JSON number or a numeric string, as sent by HTML form
// selects. Set records whether the field was present and non-null.
type FlexInt64 struct {
	Set   bool
	Value int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	raw, ok, err := flexRaw(data)
	if err != nil || !ok {
		return err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %q", raw)
	}
	f.Set, f.Value = true, value
	return nil
}

func (f FlexInt64) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// FlexFloat64 is the float counterpart of FlexInt64.
type FlexFloat64 struct {
	Set   bool
	Value float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat64) UnmarshalJSON(data []byte) error {
	raw, ok, err := flexRaw(data)
	if err != nil || !ok {
		return err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %q", raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("expected a finite number, got %q", raw)
	}
	f.Set, f.Value = true, value
	return nil
}

func (f FlexFloat64) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

// flexRaw unwraps a number or quoted string. It reports false for null and
// for blank strings.
func flexRaw(data []byte) (string, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		return s, s != "", nil
	}
	return string(trimmed), true, nil
}
