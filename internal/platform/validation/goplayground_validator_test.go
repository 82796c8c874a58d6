package validation_test

import (
	"testing"

	"github.com/ferdiebergado/shortly/internal/platform/validation"
)

type shortenInput struct {
	URL string `json:"url" validate:"required,max=2048"`
}

func TestPlaygroundValidator_ValidateStruct(t *testing.T) {
	t.Parallel()

	longURL := "https://example.com/"
	for len(longURL) <= 2048 {
		longURL += "aaaaaaaaaa"
	}

	tests := []struct {
		name      string
		input     shortenInput
		wantField string
	}{
		{
			name:  "valid input",
			input: shortenInput{URL: "https://example.com"},
		},
		{
			name:      "missing url",
			input:     shortenInput{},
			wantField: "url",
		},
		{
			name:      "url too long",
			input:     shortenInput{URL: longURL},
			wantField: "url",
		},
	}

	validator := validation.NewPlaygroundValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs := validator.ValidateStruct(tt.input)

			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("ValidateStruct() = %v, want: nil", errs)
				}
				return
			}

			if errs == nil {
				t.Fatal("ValidateStruct() = nil, want errors")
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("errs = %v, want an entry for field %q", errs, tt.wantField)
			}
		})
	}
}
