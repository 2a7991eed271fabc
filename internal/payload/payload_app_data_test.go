package payload

import (
	"testing"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/stretchr/testify/require"
)

func TestParseAppData(t *testing.T) {
	r := require.New(t)

	t.Run("should parse a JSON string", func(t *testing.T) {
		data, err := ParseAppData(`{"routeProps":{"data":{"leadPortfolioId":"123456789","otherData":"example"}}}`)
		r.NoError(err)
		r.Equal("123456789", data.LeadPortfolioID)
		r.Contains(data.Data, "routeProps")
	})

	t.Run("should accept an already decoded object", func(t *testing.T) {
		input := map[string]any{
			"routeProps": map[string]any{
				"data": map[string]any{"leadPortfolioId": "123456789"},
			},
		}
		data, err := ParseAppData(input)
		r.NoError(err)
		r.Equal("123456789", data.LeadPortfolioID)
		r.Equal(input, data.Data)
	})

	t.Run("should leave the id nil when the path is missing", func(t *testing.T) {
		data, err := ParseAppData([]byte(`{"routeProps":{}}`))
		r.NoError(err)
		r.Nil(data.LeadPortfolioID)
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		_, err := ParseAppData(`{"routeProps":`)
		r.ErrorIs(err, ErrMalformedPayload)

		_, err = ParseAppData(`[1,2]`)
		r.ErrorIs(err, ErrMalformedPayload)
	})

	t.Run("should reject unsupported input types", func(t *testing.T) {
		_, err := ParseAppData(42)
		r.ErrorIs(err, lib.BadUserInputError)
	})
}

func TestLookup(t *testing.T) {
	r := require.New(t)
	root := map[string]any{
		"a": []any{map[string]any{"b": "x"}},
	}

	v, err := Lookup(root, []string{"a", "0", "b"})
	r.NoError(err)
	r.Equal("x", v)

	v, err = Lookup(root, nil)
	r.NoError(err)
	r.Equal(root, v)

	for _, path := range [][]string{{"z"}, {"a", "1"}, {"a", "-1"}, {"a", "first"}, {"a", "0", "b", "c"}} {
		_, err = Lookup(root, path)
		r.ErrorIs(err, ErrMissingField, path)
	}
}
