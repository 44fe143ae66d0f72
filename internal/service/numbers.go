package service

import (
	"encoding/json"
	"math"
	"strconv"
)

// coerceFloat turns a decoded JSON value into a float64, accepting numbers
// and numeric strings alike. A nil or empty value yields def; anything
// non-numeric fails naming the field.
func coerceFloat(field string, v any, def float64) (float64, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case float64:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, invalidInputErr(field)
		}
		return f, nil
	case string:
		if x == "" {
			return def, nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, invalidInputErr(field)
		}
		return f, nil
	default:
		return 0, invalidInputErr(field)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
