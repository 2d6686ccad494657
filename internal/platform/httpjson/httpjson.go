package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pet-record-guardian/internal/platform/validate"
)

var ErrInvalidJSON = errors.New("invalid json")

// Write serializa v como JSON con el status dado.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode lee el body y valida los tags del DTO.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return validate.Struct(dst)
}

// DecodePatch decodifica a map (para detectar campos presentes, incluso null)
// y luego al struct para reutilizar tags.
func DecodePatch(r *http.Request, dst any) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	b, _ := json.Marshal(raw)
	if err := json.Unmarshal(b, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := validate.Struct(dst); err != nil {
		return nil, err
	}
	return raw, nil
}
