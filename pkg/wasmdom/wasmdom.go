//go:build js && wasm

// Package wasmdom backs the dom and form contracts with the live browser
// document through syscall/js.
package wasmdom

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/payback159/contactform/pkg/dom"
	"github.com/payback159/contactform/pkg/form"
	"github.com/payback159/contactform/pkg/models"
)

// ErrMissing is returned when a required page element cannot be found
var ErrMissing = errors.New("element not found")

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

// Element wraps a DOM node
type Element struct {
	v js.Value
}

func wrap(v js.Value) dom.Element {
	if !present(v) {
		return nil
	}
	return Element{v: v}
}

func (e Element) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e Element) AddClass(class string) {
	e.v.Get("classList").Call("add", class)
}

func (e Element) RemoveClass(class string) {
	e.v.Get("classList").Call("remove", class)
}

func (e Element) HasClass(class string) bool {
	return e.v.Get("classList").Call("contains", class).Bool()
}

func (e Element) Focus() {
	e.v.Call("focus")
}

// Option wraps a .radio-btn label around a radio input
type Option struct {
	Element
	value string
}

func (o Option) Value() string {
	return o.value
}

// Form wraps the contact form element
type Form struct {
	v js.Value
}

// NewForm wraps the form element
func NewForm(v js.Value) *Form {
	return &Form{v: v}
}

func (f *Form) field(name string) js.Value {
	return f.v.Get("elements").Call("namedItem", name)
}

func (f *Form) Value(name string) string {
	el := f.field(name)
	if !present(el) {
		return ""
	}
	return el.Get("value").String()
}

func (f *Form) Checked(name string) bool {
	el := f.field(name)
	if !present(el) {
		return false
	}
	return el.Get("checked").Truthy()
}

func (f *Form) Selected(group string) string {
	checked := f.v.Call("querySelector", fmt.Sprintf(`input[type="radio"][name=%q]:checked`, group))
	if !present(checked) {
		return ""
	}
	return checked.Get("value").String()
}

func (f *Form) Reset() {
	f.v.Call("reset")
}

func (f *Form) ErrorSlot(name string) dom.Element {
	return wrap(f.v.Call("querySelector", fmt.Sprintf(`[data-for=%q]`, name)))
}

func (f *Form) Input(name string) dom.Element {
	el := f.v.Call("querySelector", "#"+name)
	if !present(el) {
		el = f.v.Call("querySelector", fmt.Sprintf(`[name=%q]`, name))
	}
	return wrap(el)
}

func (f *Form) Options(group string) []dom.Option {
	labels := f.v.Call("querySelectorAll", ".radio-btn")
	n := labels.Length()
	out := make([]dom.Option, 0, n)
	for i := 0; i < n; i++ {
		label := labels.Index(i)
		radio := label.Call("querySelector", fmt.Sprintf(`input[type="radio"][name=%q]`, group))
		if !present(radio) {
			continue
		}
		out = append(out, Option{Element: Element{v: label}, value: radio.Get("value").String()})
	}
	return out
}

func (f *Form) FirstFocusable() dom.Element {
	return wrap(f.v.Call("querySelector", "input:not([disabled]), textarea:not([disabled]), select:not([disabled]), button:not([disabled])"))
}

// Scroller scrolls the window
type Scroller struct {
	window js.Value
	target js.Value
}

// SmoothScroll panics through syscall/js when the engine rejects the
// options object; the controller recovers.
func (s Scroller) SmoothScroll() error {
	if !present(s.target) {
		return ErrMissing
	}
	opts := js.Global().Get("Object").New()
	opts.Set("behavior", "smooth")
	opts.Set("block", "start")
	s.target.Call("scrollIntoView", opts)
	return nil
}

func (s Scroller) ScrollTop() {
	s.window.Call("scrollTo", 0, 0)
}

// Page is the set of elements the contact form needs, resolved from the
// document.
type Page struct {
	Document js.Value
	Window   js.Value
	Form     *Form
	Toast    js.Value
	Close    js.Value
}

// Lookup resolves the page elements by id
func Lookup(formID, toastID, closeID string) (*Page, error) {
	window := js.Global()
	doc := window.Get("document")
	formEl := doc.Call("getElementById", formID)
	if !present(formEl) {
		return nil, fmt.Errorf("form #%s: %w", formID, ErrMissing)
	}
	return &Page{
		Document: doc,
		Window:   window,
		Form:     NewForm(formEl),
		Toast:    doc.Call("getElementById", toastID),
		Close:    doc.Call("getElementById", closeID),
	}, nil
}

// Elements returns the controller's collaborators
func (p *Page) Elements() form.Elements {
	return form.Elements{
		Form:       p.Form,
		Toast:      wrap(p.Toast),
		ToastClose: wrap(p.Close),
		Scroller:   Scroller{window: p.Window, target: p.Form.v},
	}
}

// On implements form.EventTarget by attaching listeners to the element
// each event type belongs to.
func (p *Page) On(typ form.EventType, h form.Handler) {
	switch typ {
	case form.EventSubmit:
		p.listen(p.Form.v, "submit", typ, h)
	case form.EventInput:
		p.listen(p.Form.v, "input", typ, h)
	case form.EventRadioChange:
		radios := p.Form.v.Call("querySelectorAll", fmt.Sprintf(`input[type="radio"][name=%q]`, models.FieldQuery))
		for i := 0; i < radios.Length(); i++ {
			p.listen(radios.Index(i), "change", typ, h)
		}
	case form.EventKeyDown:
		p.listen(p.Document, "keydown", typ, h)
	case form.EventToastClose:
		if present(p.Close) {
			p.listen(p.Close, "click", typ, h)
		}
	}
}

func (p *Page) listen(target js.Value, jsType string, typ form.EventType, h form.Handler) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		h(toEvent(typ, args[0]))
		return nil
	})
	target.Call("addEventListener", jsType, fn)
}

func toEvent(typ form.EventType, ev js.Value) form.Event {
	e := form.Event{
		Type:           typ,
		PreventDefault: func() { ev.Call("preventDefault") },
	}
	if key := ev.Get("key"); present(key) {
		e.Key = key.String()
	}
	if target := ev.Get("target"); present(target) {
		if name := target.Get("name"); present(name) && name.String() != "" {
			e.Target = name.String()
		} else if id := target.Get("id"); present(id) {
			e.Target = id.String()
		}
	}
	return e
}
