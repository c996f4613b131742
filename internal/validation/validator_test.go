package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,user_role"`
	CheckIn  string `json:"check_in" validate:"omitempty,iso_date"`
	Method   string `json:"method" validate:"omitempty,payment_method"`
	Type     string `json:"type" validate:"omitempty,rating_type"`
	Score    int    `json:"score" validate:"omitempty,min=1,max=10"`
	Internal string `json:"-" validate:"omitempty,min=2"`
}

func valid() testRequest {
	return testRequest{
		Email:   "guest@example.com",
		Role:    "CLIENT",
		CheckIn: "2025-03-01",
		Method:  "PAYPAL",
		Type:    "OWNER_RATING",
		Score:   8,
	}
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name             string
		mutate           func(r *testRequest)
		expectedErrorMsg string
	}{
		{
			name:   "Success: all fields are valid",
			mutate: func(r *testRequest) {},
		},
		{
			name:             "Failure: invalid date",
			mutate:           func(r *testRequest) { r.CheckIn = "01.03.2025" },
			expectedErrorMsg: "field 'check_in' must be a date in YYYY-MM-DD format",
		},
		{
			name:             "Failure: unknown payment method",
			mutate:           func(r *testRequest) { r.Method = "BITCOIN" },
			expectedErrorMsg: "field 'method' must be one of CREDIT_CARD, DEBIT_CARD, BANK_TRANSFER, PAYPAL, CASH",
		},
		{
			name:             "Failure: unknown rating type",
			mutate:           func(r *testRequest) { r.Type = "PROPERTY" },
			expectedErrorMsg: "field 'type' must be CLIENT_RATING or OWNER_RATING",
		},
		{
			name:             "Failure: unknown role",
			mutate:           func(r *testRequest) { r.Role = "GUEST" },
			expectedErrorMsg: "field 'role' must be CLIENT, OWNER or ADMIN",
		},
		{
			name:             "Failure: score out of range",
			mutate:           func(r *testRequest) { r.Score = 11 },
			expectedErrorMsg: "field 'score' failed on the 'max' tag",
		},
		{
			name:             "Failure: missing required field",
			mutate:           func(r *testRequest) { r.Email = "" },
			expectedErrorMsg: "field 'email' failed on the 'required' tag",
		},
		{
			name:             "Failure: field without json name uses struct name",
			mutate:           func(r *testRequest) { r.Internal = "x" },
			expectedErrorMsg: "field 'Internal' failed on the 'min' tag",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)

			err := ValidateStruct(req)

			if tc.expectedErrorMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.IsType(t, &ValidationError{}, err)
			assert.Equal(t, tc.expectedErrorMsg, err.Error())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []string{"first", "second"}}

	assert.Equal(t, "first, second", err.Error())
}
