// Package form wires page events to validation and feedback for the
// contact form.
package form

import (
	"fmt"
	"time"

	"github.com/payback159/contactform/pkg/dom"
	"github.com/payback159/contactform/pkg/feedback"
	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/messages"
	"github.com/payback159/contactform/pkg/models"
	"github.com/payback159/contactform/pkg/validation"
)

// EventType names a page event the controller reacts to
type EventType string

const (
	EventSubmit      EventType = "submit"
	EventInput       EventType = "input"
	EventRadioChange EventType = "radio-change"
	EventKeyDown     EventType = "keydown"
	EventToastClose  EventType = "toast-close"
)

// Event is a page event reduced to what the handlers need
type Event struct {
	Type EventType
	// Target is the name (or id) of the control that fired the event
	Target string
	// Key is the KeyboardEvent.key value for keydown events
	Key string
	// PreventDefault suppresses the browser's default action, if set
	PreventDefault func()
}

// Handler reacts to one event
type Handler func(Event)

// EventTarget registers handlers with an event source
type EventTarget interface {
	On(typ EventType, h Handler)
}

// Elements are the page collaborators the controller is built from
type Elements struct {
	Form       dom.Form
	Toast      dom.Element
	ToastClose dom.Element
	Scroller   dom.Scroller
}

// Controller owns the per-page state of the contact form
type Controller struct {
	form     dom.Form
	scroller dom.Scroller
	renderer *feedback.Renderer
	toast    *feedback.Toast
}

// NewController builds the controller. A nil catalog uses the defaults.
func NewController(el Elements, catalog *messages.Catalog, opts ...feedback.ToastOption) *Controller {
	return &Controller{
		form:     el.Form,
		scroller: el.Scroller,
		renderer: feedback.NewRenderer(el.Form, catalog),
		toast:    feedback.NewToast(el.Toast, el.ToastClose, el.Form, opts...),
	}
}

// Toast returns the controller's toast
func (c *Controller) Toast() *feedback.Toast {
	return c.toast
}

// State reads the current form values
func (c *Controller) State() models.FormState {
	return models.FormState{
		FirstName: c.form.Value(models.FieldFirstName),
		LastName:  c.form.Value(models.FieldLastName),
		Email:     c.form.Value(models.FieldEmail),
		Query:     c.form.Selected(models.FieldQuery),
		Message:   c.form.Value(models.FieldMessage),
		Consent:   c.form.Checked(models.FieldConsent),
	}
}

// Submit validates the form. On success it opens the toast, resets the
// form and scrolls back to it; otherwise it renders the errors. It reports
// whether validation passed.
func (c *Controller) Submit() bool {
	start := time.Now()
	result := validation.Validate(c.State())
	c.renderer.ShowErrors(result)
	logging.LogValidation(result.Fields(), time.Since(start), result.Valid())

	if !result.Valid() {
		return false
	}

	c.toast.Open()
	c.form.Reset()
	c.renderer.ClearErrors()
	// Reset fires no change events
	c.renderer.SyncRadio()
	c.scroll()
	return true
}

// Input clears the error of the field being edited
func (c *Controller) Input(name string) {
	c.renderer.ClearField(name)
}

// RadioChange refreshes the selected marker of the query options
func (c *Controller) RadioChange() {
	c.renderer.SyncRadio()
}

// KeyDown forwards a key press to the toast
func (c *Controller) KeyDown(key string) {
	c.toast.HandleKey(key)
}

// CloseClick closes the toast
func (c *Controller) CloseClick() {
	c.toast.Close()
}

// Handlers returns the dispatch table of every event the controller handles
func (c *Controller) Handlers() map[EventType]Handler {
	return map[EventType]Handler{
		EventSubmit:      func(Event) { c.Submit() },
		EventInput:       func(e Event) { c.Input(e.Target) },
		EventRadioChange: func(Event) { c.RadioChange() },
		EventKeyDown:     func(e Event) { c.KeyDown(e.Key) },
		EventToastClose:  func(Event) { c.CloseClick() },
	}
}

// Bind subscribes every handler on target
func (c *Controller) Bind(target EventTarget) {
	for typ, h := range c.Handlers() {
		target.On(typ, c.wrap(h))
	}
}

// Dispatch routes e to its handler. Unknown event types are ignored.
func (c *Controller) Dispatch(e Event) {
	h, ok := c.Handlers()[e.Type]
	if !ok {
		logging.LogDebug("Ignoring unhandled event", "event_type", string(e.Type))
		return
	}
	c.wrap(h)(e)
}

func (c *Controller) wrap(h Handler) Handler {
	return func(e Event) {
		if e.Type == EventSubmit && e.PreventDefault != nil {
			e.PreventDefault()
		}
		h(e)
	}
}

// scroll tries a smooth scroll and jumps to the top when it fails
func (c *Controller) scroll() {
	if c.scroller == nil {
		return
	}
	if err := c.smoothScroll(); err != nil {
		logging.LogDebug("Smooth scroll failed, jumping to top", "error", err)
		c.scroller.ScrollTop()
	}
}

func (c *Controller) smoothScroll() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("smooth scroll: %v", r)
		}
	}()
	return c.scroller.SmoothScroll()
}
