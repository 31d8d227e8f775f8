package models

import "time"

// Field names as they appear in the form markup
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldQuery     = "query"
	FieldMessage   = "message"
	FieldConsent   = "consent"
)

// Fields lists every form field in document order
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldQuery,
	FieldMessage,
	FieldConsent,
}

// QueryOption is one choice of the query-type radio group
type QueryOption struct {
	Value string
	Label string
}

// QueryOptions are the choices rendered in the query-type group
var QueryOptions = []QueryOption{
	{Value: "general", Label: "General Enquiry"},
	{Value: "support", Label: "Support Request"},
	{Value: "billing", Label: "Billing Question"},
}

// FormState is a snapshot of the live form values
type FormState struct {
	FirstName string
	LastName  string
	Email     string
	Query     string // empty when no option is selected
	Message   string
	Consent   bool
}

// ErrorKind classifies a field validation failure
type ErrorKind string

const (
	ErrRequired      ErrorKind = "required"
	ErrInvalidFormat ErrorKind = "invalid_format"
)

// ValidationResult maps a failing field to its error kind. Fields that
// passed are absent.
type ValidationResult map[string]ErrorKind

// Valid reports whether every field passed
func (r ValidationResult) Valid() bool {
	return len(r) == 0
}

// Error returns the error kind recorded for field, if any
func (r ValidationResult) Error(field string) (ErrorKind, bool) {
	kind, ok := r[field]
	return kind, ok
}

// Fields returns the failing fields in document order
func (r ValidationResult) Fields() []string {
	var out []string
	for _, f := range Fields {
		if _, ok := r[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// ToastState is the visibility of the confirmation toast
type ToastState int

const (
	ToastHidden ToastState = iota
	ToastVisible
)

func (s ToastState) String() string {
	if s == ToastVisible {
		return "visible"
	}
	return "hidden"
}

// CSS classes the page styles react to
const (
	ClassInputError  = "input-error"
	ClassOptionError = "error"
	ClassSelected    = "selected"
	ClassToastShow   = "show"
)

// KeyEscape is the KeyboardEvent.key value that dismisses the toast
const KeyEscape = "Escape"

// ToastAutoHide is how long the toast stays visible without interaction
const ToastAutoHide = 5 * time.Second

// PageData holds all data needed to render the contact page template
type PageData struct {
	Title        string
	QueryOptions []QueryOption
	ToastText    string
	WasmPath     string
	WasmExecPath string
}

// Constants for the preview server limits
const (
	RateLimit = 60  // requests per minute
	RateBurst = 120 // burst capacity
)
