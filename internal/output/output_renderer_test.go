package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, format Format, v any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(format).Render(&buf, v))
	return buf.String()
}

func TestRenderer(t *testing.T) {
	r := require.New(t)

	t.Run("should render scalars verbatim as text", func(t *testing.T) {
		r.Equal("ABC123\n", render(t, FormatText, "ABC123"))
		r.Equal("3812345678901234567\n", render(t, FormatText, json.Number("3812345678901234567")))
		r.Equal("true\n", render(t, FormatText, true))
		r.Equal("\n", render(t, FormatText, nil))
	})

	t.Run("should render composites as JSON in text mode", func(t *testing.T) {
		r.Equal(`{"a":[1,"b"]}`+"\n", render(t, FormatText, map[string]any{"a": []any{json.Number("1"), "b"}}))
	})

	t.Run("should render JSON", func(t *testing.T) {
		r.Equal(`"ABC123"`+"\n", render(t, FormatJSON, "ABC123"))
		r.Equal("null\n", render(t, FormatJSON, nil))
		r.Equal("42\n", render(t, FormatJSON, json.Number("42")))
	})

	t.Run("should render YAML without quoting decoded numbers", func(t *testing.T) {
		out := render(t, FormatYAML, map[string]any{
			"id":    json.Number("42"),
			"ratio": json.Number("0.5"),
			"tags":  []any{"x"},
		})
		r.Equal("id: 42\nratio: 0.5\ntags:\n  - x\n", out)
		r.Equal("null\n", render(t, FormatYAML, nil))
	})

	t.Run("should keep every digit of integers beyond int64 in YAML", func(t *testing.T) {
		out := render(t, FormatYAML, map[string]any{
			"id":    json.Number("12345678901234567891"),
			"items": []any{json.Number("18446744073709551615")},
		})
		r.Equal("id: 12345678901234567891\nitems:\n  - 18446744073709551615\n", out)
		r.Equal("1e+21\n", render(t, FormatYAML, json.Number("1e21")))
	})

	t.Run("should render numbers nested in structs as YAML numbers", func(t *testing.T) {
		type row struct {
			ID    any     `json:"id"`
			Ratio *string `json:"ratio"`
		}
		out := render(t, FormatYAML, []row{{ID: json.Number("12345678901234567891")}})
		r.Equal("- id: 12345678901234567891\n  ratio: null\n", out)
	})

	t.Run("should parse formats", func(t *testing.T) {
		f, err := ParseFormat("")
		r.NoError(err)
		r.Equal(FormatText, f)

		f, err = ParseFormat(" YAML ")
		r.NoError(err)
		r.Equal(FormatYAML, f)

		_, err = ParseFormat("xml")
		r.ErrorIs(err, lib.BadUserInputError)
	})
}
