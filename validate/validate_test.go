package validate

import "testing"

func TestCheck(t *testing.T) {
	type signup struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Quantity *int   `json:"quantity" validate:"required"`
	}
	one := 1

	tests := []struct {
		name string
		val  signup
		want string
	}{
		{"valid", signup{Email: "a@b.dev", Password: "longenough", Quantity: &one}, ""},
		{"missing email", signup{Password: "longenough", Quantity: &one}, "email is a required field"},
		{"bad email", signup{Email: "nope", Password: "longenough", Quantity: &one}, "email must be a valid email address"},
		{"short password", signup{Email: "a@b.dev", Password: "short", Quantity: &one}, "password must be at least 8 characters in length"},
		{"nil pointer", signup{Email: "a@b.dev", Password: "longenough"}, "quantity is a required field"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.val)
			switch {
			case tc.want == "" && err != nil:
				t.Fatalf("unexpected error %v", err)
			case tc.want != "" && (err == nil || err.Error() != tc.want):
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}
