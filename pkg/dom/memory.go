package dom

import (
	"sort"
	"sync"

	"github.com/payback159/contactform/pkg/models"
)

// MemPage is an in-memory page that tracks which element has focus
type MemPage struct {
	mu     sync.Mutex
	active *MemElement
}

// NewMemPage creates an empty page
func NewMemPage() *MemPage {
	return &MemPage{}
}

// NewElement creates an element attached to the page
func (p *MemPage) NewElement(id string) *MemElement {
	return &MemElement{ID: id, page: p, classes: make(map[string]bool)}
}

// Active returns the focused element, or nil
func (p *MemPage) Active() *MemElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// MemElement is an in-memory Element
type MemElement struct {
	ID string

	page    *MemPage
	mu      sync.Mutex
	text    string
	classes map[string]bool
}

func (e *MemElement) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// Text returns the current text content
func (e *MemElement) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *MemElement) AddClass(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes[class] = true
}

func (e *MemElement) RemoveClass(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.classes, class)
}

func (e *MemElement) HasClass(class string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.classes[class]
}

// Classes returns the class list in sorted order
func (e *MemElement) Classes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (e *MemElement) Focus() {
	if e.page == nil {
		return
	}
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.active = e
}

// MemOption is an in-memory radio option wrapper
type MemOption struct {
	*MemElement
	value string
}

func (o *MemOption) Value() string {
	return o.value
}

// MemForm is an in-memory contact form with every field, error slot and
// query option present.
type MemForm struct {
	page *MemPage

	mu       sync.Mutex
	values   map[string]string
	checked  map[string]bool
	selected map[string]string

	slots   map[string]*MemElement
	inputs  map[string]*MemElement
	options map[string][]*MemOption
}

// NewMemForm builds the contact form on page
func NewMemForm(page *MemPage) *MemForm {
	f := &MemForm{
		page:     page,
		values:   make(map[string]string),
		checked:  make(map[string]bool),
		selected: make(map[string]string),
		slots:    make(map[string]*MemElement),
		inputs:   make(map[string]*MemElement),
		options:  make(map[string][]*MemOption),
	}
	for _, name := range models.Fields {
		f.slots[name] = page.NewElement(name + "-error")
		if name == models.FieldQuery {
			continue
		}
		f.inputs[name] = page.NewElement(name)
	}
	for _, opt := range models.QueryOptions {
		f.options[models.FieldQuery] = append(f.options[models.FieldQuery], &MemOption{
			MemElement: page.NewElement("query-" + opt.Value),
			value:      opt.Value,
		})
	}
	return f
}

// Fill sets every field from state
func (f *MemForm) Fill(state models.FormState) {
	f.SetValue(models.FieldFirstName, state.FirstName)
	f.SetValue(models.FieldLastName, state.LastName)
	f.SetValue(models.FieldEmail, state.Email)
	f.SetValue(models.FieldMessage, state.Message)
	f.Select(models.FieldQuery, state.Query)
	f.SetChecked(models.FieldConsent, state.Consent)
}

// State reads every field back into a FormState
func (f *MemForm) State() models.FormState {
	return models.FormState{
		FirstName: f.Value(models.FieldFirstName),
		LastName:  f.Value(models.FieldLastName),
		Email:     f.Value(models.FieldEmail),
		Query:     f.Selected(models.FieldQuery),
		Message:   f.Value(models.FieldMessage),
		Consent:   f.Checked(models.FieldConsent),
	}
}

// SetValue sets a text field
func (f *MemForm) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
}

// SetChecked sets a checkbox
func (f *MemForm) SetChecked(name string, checked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked[name] = checked
}

// Select checks the radio with value in group; "" clears the group
func (f *MemForm) Select(group, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected[group] = value
}

func (f *MemForm) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

func (f *MemForm) Checked(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checked[name]
}

func (f *MemForm) Selected(group string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected[group]
}

func (f *MemForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string)
	f.checked = make(map[string]bool)
	f.selected = make(map[string]string)
}

func (f *MemForm) ErrorSlot(name string) Element {
	if el := f.Slot(name); el != nil {
		return el
	}
	return nil
}

func (f *MemForm) Input(name string) Element {
	if el := f.Control(name); el != nil {
		return el
	}
	return nil
}

func (f *MemForm) Options(group string) []Option {
	f.mu.Lock()
	defer f.mu.Unlock()
	opts := f.options[group]
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, o)
	}
	return out
}

func (f *MemForm) FirstFocusable() Element {
	for _, name := range models.Fields {
		if el := f.Control(name); el != nil {
			return el
		}
	}
	return nil
}

// Slot returns the concrete error slot for name, or nil
func (f *MemForm) Slot(name string) *MemElement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[name]
}

// Control returns the concrete input for name, or nil
func (f *MemForm) Control(name string) *MemElement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inputs[name]
}

// Option returns the concrete option with value in group, or nil
func (f *MemForm) Option(group, value string) *MemOption {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.options[group] {
		if o.value == value {
			return o
		}
	}
	return nil
}

// Detach removes the error slot and input of name, simulating markup that
// lacks them.
func (f *MemForm) Detach(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.slots, name)
	delete(f.inputs, name)
	delete(f.options, name)
}

// MemScroller records scroll requests. Err or Panic make SmoothScroll fail.
type MemScroller struct {
	Err   error
	Panic bool

	Smooth int
	Top    int
}

func (s *MemScroller) SmoothScroll() error {
	s.Smooth++
	if s.Panic {
		panic("smooth scrolling unsupported")
	}
	return s.Err
}

func (s *MemScroller) ScrollTop() {
	s.Top++
}
