package contact

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrInvalid is returned by Submit when a field fails validation.
	ErrInvalid = errors.New("contact form is incomplete")
	// ErrBusy is returned when a submission is already outstanding.
	ErrBusy = errors.New("a message is already being sent")
	// ErrReadOnly is returned for edits while a submission is outstanding.
	ErrReadOnly = errors.New("contact form is read-only while sending")
	// ErrAlreadySent is returned by Begin in Success until Reset is called.
	ErrAlreadySent = errors.New("message already sent")
	// ErrNotSuccess is returned by Reset outside the Success state.
	ErrNotSuccess = errors.New("no sent message to reset")
	// ErrNotSending is returned by Complete without an outstanding submission.
	ErrNotSending = errors.New("no submission outstanding")
)

// Config wires a Controller.
type Config struct {
	Relay Relay
	// Subject is sent with every submission.
	Subject string
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Controller owns the contact form of one page and moves it through
// Idle, Sending, Success and Error.
//
// The relay exchange runs without the lock held, so reads and unrelated
// page interaction never wait on the network.
type Controller struct {
	relay   Relay
	subject string
	logger  *slog.Logger

	mu     sync.Mutex
	form   Form
	status Status
}

func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		relay:   cfg.Relay,
		subject: cfg.Subject,
		logger:  logger,
		status:  Idle{},
	}
}

// Form returns the current field values.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Status returns the current submission state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// CanSubmit reports whether the submit control is enabled.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	if _, sending := c.status.(Sending); sending {
		return false
	}
	return c.form.Valid()
}

// SetForm replaces all three fields.
func (c *Controller) SetForm(f Form) error {
	return c.edit(func(form *Form) { *form = f })
}

func (c *Controller) SetName(v string) error {
	return c.edit(func(f *Form) { f.Name = v })
}

func (c *Controller) SetEmail(v string) error {
	return c.edit(func(f *Form) { f.Email = v })
}

func (c *Controller) SetMessage(v string) error {
	return c.edit(func(f *Form) { f.Message = v })
}

func (c *Controller) edit(apply func(*Form)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, sending := c.status.(Sending); sending {
		return ErrReadOnly
	}
	apply(&c.form)
	return nil
}

// Begin moves Idle or Error to Sending and returns the submission to hand
// to the relay. Success must be reset before another message is sent.
func (c *Controller) Begin() (Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.status.(type) {
	case Sending:
		return Submission{}, ErrBusy
	case Success:
		return Submission{}, ErrAlreadySent
	case Idle, Error:
	}
	if !c.form.Valid() {
		return Submission{}, ErrInvalid
	}

	c.status = Sending{}
	return Submission{Form: c.form, Subject: c.subject}, nil
}

// Complete applies the relay's outcome to an outstanding submission. A nil
// err means the relay accepted the message.
func (c *Controller) Complete(err error) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, sending := c.status.(Sending); !sending {
		return c.status, ErrNotSending
	}

	if err == nil {
		c.form = Form{}
		c.status = Success{}
		return c.status, nil
	}

	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		msg := rej.Message
		if msg == "" {
			msg = GenericRejectionMessage
		}
		c.status = Error{Message: msg}
	default:
		c.status = Error{Message: GenericConnectivityMessage}
	}
	return c.status, nil
}

// Submit sends the form through the relay and waits for the outcome. It
// returns an error only when the submission could not start; relay
// failures are reported through the returned Error status.
func (c *Controller) Submit(ctx context.Context) (Status, error) {
	sub, err := c.Begin()
	if err != nil {
		return c.Status(), err
	}

	sendErr := c.relay.Send(ctx, sub)
	status, err := c.Complete(sendErr)
	if err != nil {
		return status, err
	}
	if sendErr != nil {
		c.logger.Info("contact submission failed", "error", sendErr, "status", status.String())
	}
	return status, nil
}

// Reset leaves Success for a fresh, empty Idle form.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.status.(Success); !ok {
		return ErrNotSuccess
	}
	c.form = Form{}
	c.status = Idle{}
	return nil
}
