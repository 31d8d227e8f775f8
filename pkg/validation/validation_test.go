package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/payback159/contactform/pkg/models"
)

func validState() models.FormState {
	return models.FormState{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@b.co",
		Query:     "general",
		Message:   "hi",
		Consent:   true,
	}
}

func TestValidate_AllEmpty(t *testing.T) {
	got := Validate(models.FormState{})

	want := models.ValidationResult{
		models.FieldFirstName: models.ErrRequired,
		models.FieldLastName:  models.ErrRequired,
		models.FieldEmail:     models.ErrRequired,
		models.FieldQuery:     models.ErrRequired,
		models.FieldMessage:   models.ErrRequired,
		models.FieldConsent:   models.ErrRequired,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate(empty) mismatch (-want +got):\n%s", diff)
	}
	if got.Valid() {
		t.Error("empty form should not be valid")
	}
}

func TestValidate_OnlyEmailMalformed(t *testing.T) {
	state := models.FormState{
		FirstName: "A",
		LastName:  "B",
		Email:     "not-an-email",
		Query:     "support",
		Message:   "hi",
		Consent:   true,
	}

	got := Validate(state)

	want := models.ValidationResult{models.FieldEmail: models.ErrInvalidFormat}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_AllValid(t *testing.T) {
	got := Validate(validState())
	if !got.Valid() {
		t.Errorf("want valid, got errors for %v", got.Fields())
	}
}

func TestValidate_WhitespaceOnlyIsRequired(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*models.FormState)
	}{
		{"first name spaces", models.FieldFirstName, func(s *models.FormState) { s.FirstName = "   " }},
		{"last name tabs", models.FieldLastName, func(s *models.FormState) { s.LastName = "\t\n" }},
		{"email spaces", models.FieldEmail, func(s *models.FormState) { s.Email = " " }},
		{"message newlines", models.FieldMessage, func(s *models.FormState) { s.Message = "\n\n" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := validState()
			tt.edit(&state)

			got := Validate(state)
			want := models.ValidationResult{tt.field: models.ErrRequired}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_FieldsAreIndependent(t *testing.T) {
	for _, field := range models.Fields {
		t.Run(field, func(t *testing.T) {
			state := validState()
			switch field {
			case models.FieldFirstName:
				state.FirstName = ""
			case models.FieldLastName:
				state.LastName = ""
			case models.FieldEmail:
				state.Email = ""
			case models.FieldQuery:
				state.Query = ""
			case models.FieldMessage:
				state.Message = ""
			case models.FieldConsent:
				state.Consent = false
			}

			got := Validate(state)
			if diff := cmp.Diff([]string{field}, got.Fields()); diff != "" {
				t.Errorf("only %s should fail (-want +got):\n%s", field, diff)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"first.last@example.org", true},
		{"a@b.c.d", true},
		{"weird!#$@x.y", true},
		{"not-an-email", false},
		{"a@b", false},
		{"@b.co", false},
		{"a@.co", false},
		{"a@b@c.d", true},
		{"a@b.", false},
		{"a @b.co", false},
		{"a@b .co", false},
		{"", false},
		{"a\u00a0b@c.co", false},
		{"a@b\u2003.co", false},
		{"a\vb@c.co", false},
		{"a@b.c\u3000o", false},
		{"a@b.c\u2028o", false},
		{"a\ufeffb@c.co", false},
		{"a\u0085b@c.co", true},
		{"é@ü.co", true},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.in); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_EmailTrimmedBeforeShapeCheck(t *testing.T) {
	state := validState()
	state.Email = "  a@b.co  "

	if got := Validate(state); !got.Valid() {
		t.Errorf("surrounding whitespace should be ignored, got %v", got)
	}
}

func TestValidate_UnicodeWhitespace(t *testing.T) {
	state := validState()
	state.FirstName = "\u00a0\u3000"
	state.Message = "\ufeff\v"
	state.Email = "\u2003a@b.co\u00a0"

	got := Validate(state)
	want := models.ValidationResult{
		models.FieldFirstName: models.ErrRequired,
		models.FieldMessage:   models.ErrRequired,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	state = validState()
	state.Email = "a\u00a0b@c.co"
	got = Validate(state)
	want = models.ValidationResult{models.FieldEmail: models.ErrInvalidFormat}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inner NBSP should be malformed (-want +got):\n%s", diff)
	}
}

func TestValidationResult_FieldsInDocumentOrder(t *testing.T) {
	result := models.ValidationResult{
		models.FieldConsent:   models.ErrRequired,
		models.FieldFirstName: models.ErrRequired,
		models.FieldQuery:     models.ErrRequired,
	}

	want := []string{models.FieldFirstName, models.FieldQuery, models.FieldConsent}
	if diff := cmp.Diff(want, result.Fields()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
