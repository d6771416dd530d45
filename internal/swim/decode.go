package swim

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrInvalidJSON is returned by Decode for input that is not a single JSON object.
var ErrInvalidJSON = errors.New("invalid JSON payload")

// Decode reads exactly one JSON value from r, keeping numbers as json.Number.
// An empty body and null both yield a nil map, which Validate reports as an
// empty payload. Read errors from r are returned as is.
func Decode(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, decodeErr(err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, decodeErr(err)
	}

	switch obj := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return obj, nil
	}
	return nil, ErrInvalidJSON
}

func decodeErr(err error) error {
	if err == nil {
		return ErrInvalidJSON
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Join(ErrInvalidJSON, err)
	}
	return err
}
