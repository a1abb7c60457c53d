package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Name   string `binding:"required,notblank"`
	Mobile string `binding:"required,mobile"`
	Start  string `binding:"required,date"`
}

func TestCustomRules(t *testing.T) {
	Register()
	Register() // idempotent

	ok := sample{Name: "Ann", Mobile: "+919999999999", Start: "2024-01-01"}
	if err := binding.Validator.ValidateStruct(ok); err != nil {
		t.Fatalf("expected valid sample, got %v", err)
	}

	cases := map[string]struct {
		in    sample
		field string
	}{
		"blank name":   {sample{Name: "   ", Mobile: "9999999999", Start: "2024-01-01"}, "name"},
		"short mobile": {sample{Name: "Ann", Mobile: "123", Start: "2024-01-01"}, "mobile"},
		"letters":      {sample{Name: "Ann", Mobile: "99999abc99", Start: "2024-01-01"}, "mobile"},
		"bad date":     {sample{Name: "Ann", Mobile: "9999999999", Start: "01/02/2024"}, "start"},
	}
	for name, tc := range cases {
		err := binding.Validator.ValidateStruct(tc.in)
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		field, msg, ok := FieldErrors(err)
		if !ok {
			t.Fatalf("%s: expected validator errors, got %T", name, err)
		}
		if field != tc.field {
			t.Fatalf("%s: expected field %s, got %s (%s)", name, tc.field, field, msg)
		}
	}
}

func TestRFC3339DateAccepted(t *testing.T) {
	Register()
	in := sample{Name: "Ann", Mobile: "9999999999", Start: "2024-01-01T00:00:00.000Z"}
	if err := binding.Validator.ValidateStruct(in); err != nil {
		t.Fatalf("expected RFC 3339 date to validate, got %v", err)
	}
}
