package validate

import (
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Pattern *string `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Days    int     `json:"lookahead_days" validate:"gte=0,lte=365"`
}

func TestStruct_OK(t *testing.T) {
	p := "weekly"
	if err := Struct(sampleRequest{Date: "2024-01-01", Pattern: &p, Days: 7}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	p := "hourly"
	err := Struct(sampleRequest{Date: "01/01/2024", Pattern: &p, Days: 400})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"date must be YYYY-MM-DD", "recurrence_pattern must be one of", "lookahead_days must be <= 365"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}
