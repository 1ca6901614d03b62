package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/dto"
)

func TestValidatorFeedbackMessage(t *testing.T) {
	validate := NewValidator()
	approved := true

	cases := map[string]struct {
		message string
		valid   bool
	}{
		"text":            {message: "Looks good", valid: true},
		"empty":           {message: "", valid: false},
		"whitespace only": {message: " \t\n ", valid: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := validate.Struct(dto.FeedbackRequest{Message: tc.message, Approved: &approved})
			if tc.valid {
				require.NoError(t, err)
				return
			}
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Equal(t, "message", errs[0].Field())
		})
	}
}

func TestValidatorLooseEmail(t *testing.T) {
	validate := NewValidator()
	require.NoError(t, validate.Var("ada@example.com", "loose_email"))
	require.Error(t, validate.Var("ada@example", "loose_email"))
	require.Error(t, validate.Var("ada @example.com", "loose_email"))
}
