package payload

import (
	"fmt"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
)

// AppData is the decoded application state plus the lead portfolio id found in it.
type AppData struct {
	LeadPortfolioID any            `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	Data            map[string]any `json:"appData" yaml:"appData"`
}

// ParseAppData accepts the payload either as raw JSON or already decoded by an
// upstream step. Unlike Extract, a missing id is not an error: it stays nil.
func ParseAppData(input any) (*AppData, error) {
	var decoded any
	switch v := input.(type) {
	case string:
		d, err := DecodeJSON([]byte(v))
		if err != nil {
			return nil, err
		}
		decoded = d
	case []byte:
		d, err := DecodeJSON(v)
		if err != nil {
			return nil, err
		}
		decoded = d
	case map[string]any:
		decoded = v
	default:
		return nil, fmt.Errorf("unsupported app data input %T. %w", input, lib.BadUserInputError)
	}

	data, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: app data must be a JSON object, got %T", ErrMalformedPayload, decoded)
	}

	id, err := Lookup(data, DefaultPath)
	if err != nil {
		id = nil
	}

	return &AppData{
		LeadPortfolioID: id,
		Data:            data,
	}, nil
}
