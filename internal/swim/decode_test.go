package swim

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	raw, err := Decode(strings.NewReader(`{"name":"Alex","lap_times":[32.5]}`))
	require.NoError(t, err)
	assert.Equal(t, "Alex", raw["name"])
	assert.Equal(t, []any{json.Number("32.5")}, raw["lap_times"])
}

func TestDecode_EmptyYieldsNil(t *testing.T) {
	for _, body := range []string{"", "   \n", "null"} {
		raw, err := Decode(strings.NewReader(body))
		require.NoError(t, err, "%q", body)
		assert.Nil(t, raw)

		_, err = Validate(raw)
		assert.ErrorIs(t, err, ErrEmptyPayload)
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, body := range []string{`name=Alex`, `[1,2]`, `"text"`, `42`, `{"name":`, `{} {}`, `{"a":1} trailing`} {
		_, err := Decode(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrInvalidJSON, "%q", body)
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestDecode_ReadErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := Decode(failingReader{boom})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidJSON)
}
