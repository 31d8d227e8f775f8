// Package dom describes the page elements the contact form logic works
// against. Lookups that find nothing return nil and callers skip the step.
package dom

// Element is a node whose text, class list and focus can be changed
type Element interface {
	SetText(text string)
	AddClass(class string)
	RemoveClass(class string)
	HasClass(class string) bool
	Focus()
}

// Option is the visual wrapper around one radio input of a group
type Option interface {
	Element
	// Value is the value of the radio input the option wraps
	Value() string
}

// Form exposes the named fields of the contact form and the elements tied
// to them.
type Form interface {
	// Value returns the current value of a text field
	Value(name string) string
	// Checked reports whether a checkbox is checked
	Checked(name string) bool
	// Selected returns the checked value of a radio group, or "" if none
	Selected(group string) string
	// Reset restores every field to its initial empty state
	Reset()

	// ErrorSlot returns the element that shows the error text for a field
	ErrorSlot(name string) Element
	// Input returns the control element of a field
	Input(name string) Element
	// Options returns the visual options of a radio group
	Options(group string) []Option
	// FirstFocusable returns the first control that can receive focus
	FirstFocusable() Element
}

// Scroller moves the viewport after a successful submission
type Scroller interface {
	// SmoothScroll animates to the form. It may fail on engines without
	// smooth scrolling support.
	SmoothScroll() error
	// ScrollTop jumps to the top of the page
	ScrollTop()
}
