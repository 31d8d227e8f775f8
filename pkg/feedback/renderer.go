// Package feedback turns validation results into visible error state and
// drives the confirmation toast.
package feedback

import (
	"github.com/payback159/contactform/pkg/dom"
	"github.com/payback159/contactform/pkg/messages"
	"github.com/payback159/contactform/pkg/models"
)

// Renderer writes error text and error markers onto the form
type Renderer struct {
	form    dom.Form
	catalog *messages.Catalog
}

// NewRenderer creates a renderer for form. A nil catalog uses the defaults.
func NewRenderer(form dom.Form, catalog *messages.Catalog) *Renderer {
	if catalog == nil {
		catalog = messages.Default()
	}
	return &Renderer{form: form, catalog: catalog}
}

// ShowErrors replaces all visible error state with the errors in result
func (r *Renderer) ShowErrors(result models.ValidationResult) {
	r.ClearErrors()

	for _, field := range result.Fields() {
		kind, _ := result.Error(field)
		if slot := r.form.ErrorSlot(field); slot != nil {
			slot.SetText(r.catalog.Message(field, kind))
		}

		// No single input represents the radio group
		if field == models.FieldQuery {
			for _, opt := range r.form.Options(field) {
				opt.AddClass(models.ClassOptionError)
			}
			continue
		}
		if input := r.form.Input(field); input != nil {
			input.AddClass(models.ClassInputError)
		}
	}
}

// ClearErrors removes every error text and error marker
func (r *Renderer) ClearErrors() {
	for _, field := range models.Fields {
		if slot := r.form.ErrorSlot(field); slot != nil {
			slot.SetText("")
		}
		if input := r.form.Input(field); input != nil {
			input.RemoveClass(models.ClassInputError)
		}
	}
	for _, opt := range r.form.Options(models.FieldQuery) {
		opt.RemoveClass(models.ClassOptionError)
	}
}

// ClearField removes the error state of a single field while the user edits
// it. Other fields keep their errors.
func (r *Renderer) ClearField(name string) {
	if name == "" {
		return
	}
	if slot := r.form.ErrorSlot(name); slot != nil {
		slot.SetText("")
	}
	if input := r.form.Input(name); input != nil && input.HasClass(models.ClassInputError) {
		input.RemoveClass(models.ClassInputError)
	}
	if name == models.FieldQuery {
		for _, opt := range r.form.Options(name) {
			opt.RemoveClass(models.ClassOptionError)
		}
	}
}

// SyncRadio marks the option of the checked query radio as selected and
// unmarks the rest.
func (r *Renderer) SyncRadio() {
	checked := r.form.Selected(models.FieldQuery)
	for _, opt := range r.form.Options(models.FieldQuery) {
		opt.RemoveClass(models.ClassSelected)
	}
	if checked == "" {
		return
	}
	for _, opt := range r.form.Options(models.FieldQuery) {
		if opt.Value() == checked {
			opt.AddClass(models.ClassSelected)
			return
		}
	}
}
