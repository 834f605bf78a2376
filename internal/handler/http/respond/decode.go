package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"magazine-catalog/internal/domain/entity"
)

var (
	// ErrInvalidBody is returned when the request body is not a JSON object.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrBodyTooLarge is returned when the body exceeds the http.MaxBytesReader cap.
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeJSON decodes the request body into v. An over-limit body yields
// ErrBodyTooLarge and any other decode failure ErrInvalidBody.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return ErrInvalidBody
	}
	return nil
}

// DecodeStrings decodes a JSON object body and extracts the named fields as strings.
// A missing or non-string field yields a TypeKind *entity.ValidationError.
func DecodeStrings(r *http.Request, fields ...string) (map[string]string, error) {
	var raw map[string]any
	if err := DecodeJSON(r, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrInvalidBody
	}

	out := make(map[string]string, len(fields))
	for _, f := range fields {
		s, err := entity.StringField(f, raw[f])
		if err != nil {
			return nil, err
		}
		out[f] = s
	}
	return out, nil
}
