package feedback

import (
	"sync"
	"time"

	"github.com/payback159/contactform/pkg/dom"
	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/models"
)

// Toast is the confirmation notification. It owns at most one auto-hide
// timer at a time.
type Toast struct {
	container dom.Element
	closeCtl  dom.Element
	form      dom.Form
	scheduler Scheduler
	delay     time.Duration

	mu    sync.Mutex
	state models.ToastState
	timer Timer
	// gen identifies the current timer; callbacks of replaced timers no-op
	gen uint64
}

// ToastOption configures a Toast
type ToastOption func(*Toast)

// WithScheduler replaces the runtime timer
func WithScheduler(s Scheduler) ToastOption {
	return func(t *Toast) { t.scheduler = s }
}

// WithDelay overrides the auto-hide delay
func WithDelay(d time.Duration) ToastOption {
	return func(t *Toast) { t.delay = d }
}

// NewToast creates a hidden toast. Focus returns to form's first control on
// close.
func NewToast(container, closeCtl dom.Element, form dom.Form, opts ...ToastOption) *Toast {
	t := &Toast{
		container: container,
		closeCtl:  closeCtl,
		form:      form,
		scheduler: SystemScheduler{},
		delay:     models.ToastAutoHide,
		state:     models.ToastHidden,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Open shows the toast, focuses its close control and restarts the
// auto-hide timer.
func (t *Toast) Open() {
	t.mu.Lock()
	defer t.mu.Unlock()

	reopen := t.state == models.ToastVisible
	t.stopTimerLocked()
	t.state = models.ToastVisible

	if t.container != nil {
		t.container.AddClass(models.ClassToastShow)
	}
	if t.closeCtl != nil {
		t.closeCtl.Focus()
	}

	t.gen++
	gen := t.gen
	t.timer = t.scheduler.AfterFunc(t.delay, func() { t.expire(gen) })

	transition := "open"
	if reopen {
		transition = "reopen"
	}
	logging.LogToast(transition, "auto_hide_ms", t.delay.Milliseconds())
}

// Close hides the toast, cancels the pending timer and returns focus to the
// form.
func (t *Toast) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeLocked("manual")
}

// HandleKey closes the toast on Escape while it is visible. It reports
// whether the key was consumed.
func (t *Toast) HandleKey(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key != models.KeyEscape || t.state != models.ToastVisible {
		return false
	}
	t.closeLocked("escape")
	return true
}

// State returns the current visibility
func (t *Toast) State() models.ToastState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Visible reports whether the toast is shown
func (t *Toast) Visible() bool {
	return t.State() == models.ToastVisible
}

// Pending reports whether an auto-hide timer is armed
func (t *Toast) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen || t.timer == nil {
		return
	}
	t.timer = nil
	t.closeLocked("timeout")
}

func (t *Toast) closeLocked(reason string) {
	t.stopTimerLocked()
	wasVisible := t.state == models.ToastVisible
	t.state = models.ToastHidden

	if t.container != nil {
		t.container.RemoveClass(models.ClassToastShow)
	}
	if t.form != nil {
		if first := t.form.FirstFocusable(); first != nil {
			first.Focus()
		}
	}

	if wasVisible {
		logging.LogToast("close", "reason", reason)
	}
}

func (t *Toast) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
