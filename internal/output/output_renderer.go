// Package output writes step results in the format the calling pipeline expects.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected one of text, json, yaml. %w", value, lib.BadUserInputError)
	}
}

type Renderer struct {
	format Format
}

func NewRenderer(format Format) *Renderer {
	if format == "" {
		format = FormatText
	}
	return &Renderer{format: format}
}

// Render writes v followed by a newline. A nil value renders as an empty text
// line, JSON null or YAML null.
func (r *Renderer) Render(w io.Writer, v any) error {
	var data []byte
	var err error

	switch r.format {
	case FormatText:
		data, err = renderText(v)
	case FormatJSON:
		data, err = json.Marshal(v)
	case FormatYAML:
		data, err = renderYAML(v)
	default:
		return fmt.Errorf("unknown output format %q. %w", r.format, lib.BadUserInputError)
	}
	if err != nil {
		return fmt.Errorf("rendering %s output: %w", r.format, err)
	}

	data = bytes.TrimRight(data, "\n")
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func renderText(v any) ([]byte, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(value), nil
	case json.Number:
		return []byte(value.String()), nil
	case fmt.Stringer:
		return []byte(value.String()), nil
	case bool, int, int64, float64:
		return []byte(fmt.Sprint(value)), nil
	default:
		return json.Marshal(v)
	}
}

func renderYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlSafe(v)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlSafe swaps json.Number for a plain scalar so the YAML encoder does not
// quote numbers that came out of a decoded payload. Integers keep their exact
// digits even past the int64 range.
func yamlSafe(v any) any {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		literal := value.String()
		if !strings.ContainsAny(literal, ".eE") {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: literal}
		}
		if f, err := value.Float64(); err == nil {
			return f
		}
		return literal
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = yamlSafe(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = yamlSafe(item)
		}
		return out
	default:
		if generic, ok := toGeneric(v); ok {
			return yamlSafe(generic)
		}
		return v
	}
}

// toGeneric re-decodes typed structs and slices through their JSON form so
// nested json.Number fields get the same treatment as decoded payloads. Keys
// come out sorted instead of in field order.
func toGeneric(v any) (any, bool) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Struct, reflect.Array:
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	default:
		return nil, false
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, false
	}
	return generic, true
}
