package swim

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Sentinel kinds, matched by errors.Is against a *ValidationError.
var (
	ErrEmptyPayload     = errors.New("empty payload")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrValueOutOfRange  = errors.New("value out of range")
)

const (
	expectedNumbers = "sequence of numbers"
	expectedFinite  = "finite numbers"
)

// ValidationError reports the first rule a payload broke.
type ValidationError struct {
	Kind     error  // one of ErrEmptyPayload, ErrMissingField, ErrInvalidFieldType, ErrValueOutOfRange
	Field    string // offending field, empty for ErrEmptyPayload
	Expected string // expected shape, set for ErrInvalidFieldType and ErrValueOutOfRange
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrMissingField:
		return "Missing required field: " + e.Field
	case ErrInvalidFieldType:
		return fmt.Sprintf("Invalid type for field %s: expected %s", e.Field, e.Expected)
	case ErrValueOutOfRange:
		return fmt.Sprintf("Value out of range for field %s: expected %s", e.Field, e.Expected)
	default:
		return "No data provided"
	}
}

func (e *ValidationError) Is(target error) bool { return target == e.Kind }

// Validate checks a decoded JSON object and returns the typed record.
// Rules run in a fixed order and the first violation wins:
//  1. the payload is non-nil and non-empty
//  2. every required field is present
//  3. name is a string
//  4. each series field, in order, is an array of finite numbers; within one
//     field a non-number is reported ahead of an out-of-range number
func Validate(raw map[string]any) (Record, error) {
	if len(raw) == 0 {
		return Record{}, &ValidationError{Kind: ErrEmptyPayload}
	}

	for _, field := range RequiredFields {
		if _, ok := raw[field]; !ok {
			return Record{}, &ValidationError{Kind: ErrMissingField, Field: field}
		}
	}

	name, ok := raw[FieldName].(string)
	if !ok {
		return Record{}, &ValidationError{Kind: ErrInvalidFieldType, Field: FieldName, Expected: "string"}
	}

	rec := Record{
		Name: name,
		Session: SessionInfo{
			GroupNumber: raw[FieldGroupNumber],
			ClubName:    raw[FieldClubName],
			EventDate:   raw[FieldEventDate],
			SessionType: SessionType,
		},
	}
	for _, field := range SeriesFields {
		s, err := toSeries(raw[field])
		if err != nil {
			expected := expectedNumbers
			if err == ErrValueOutOfRange {
				expected = expectedFinite
			}
			return Record{}, &ValidationError{Kind: err, Field: field, Expected: expected}
		}
		*rec.series(field) = s
	}
	return rec, nil
}

// toSeries converts a decoded JSON array into a Series. Booleans and strings
// are rejected even when they look numeric. A type problem anywhere in the
// array wins over a range problem.
func toSeries(v any) (Series, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, ErrInvalidFieldType
	}
	out := make(Series, 0, len(items))
	var rangeErr error
	for _, item := range items {
		f, err := toFloat(item)
		switch {
		case err == ErrInvalidFieldType:
			return nil, err
		case err != nil:
			rangeErr = err
		}
		out = append(out, f)
	}
	if rangeErr != nil {
		return nil, rangeErr
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, ErrValueOutOfRange
			}
			return 0, ErrInvalidFieldType
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	default:
		return 0, ErrInvalidFieldType
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrValueOutOfRange
	}
	return f, nil
}
