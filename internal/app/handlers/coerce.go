package handlers

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Исходный API принимал price/quantity и числом, и строкой, а всё,
// что не парсится, превращал в ноль. Поведение сохранено.

// FlexFloat — число с плавающей точкой, терпимое к строковому представлению.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(coerceFloat(data))
	return nil
}

// FlexInt — целое, терпимое к строковому и дробному представлению.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = FlexInt(coerceInt(data))
	return nil
}

// FlexInt64 — идентификатор, терпимый к строковому представлению.
type FlexInt64 int64

func (i *FlexInt64) UnmarshalJSON(data []byte) error {
	*i = FlexInt64(coerceInt(data))
	return nil
}

func coerceFloat(data []byte) float64 {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		return num
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			return parsed
		}
	}
	return 0
}

func coerceInt(data []byte) int64 {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if parsed, err := num.Int64(); err == nil {
			return parsed
		}
		if parsed, err := num.Float64(); err == nil {
			return int64(parsed)
		}
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64); err == nil {
			return parsed
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			return int64(parsed)
		}
	}
	return 0
}
