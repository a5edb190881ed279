// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt is an integer that also accepts numeric strings and fractional numbers.
// Fractions are truncated toward zero; strings keep their leading integer prefix ("250ml" is 250).
// JSON null leaves the value at zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := parseLeadingInt(s)
		if err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	if num > math.MaxInt32 || num < math.MinInt32 {
		return fmt.Errorf("integer out of range: %s", data)
	}
	*f = FlexInt(math.Trunc(num))
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}

func parseLeadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("expected integer, got %q", s)
	}

	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("integer out of range: %q", s)
	}
	return int(n), nil
}
