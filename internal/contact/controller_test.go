package contact

import (
	"context"
	"errors"
	"testing"
)

var validForm = Form{Name: "Ada Lovelace", Email: "ada@example.com", Message: "Let's talk engines."}

func newTestController(t *testing.T, relay Relay) *Controller {
	t.Helper()
	c := NewController(Config{Relay: relay, Subject: "New Portfolio Inquiry"})
	if err := c.SetForm(validForm); err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	return c
}

func TestSubmitSuccessClearsForm(t *testing.T) {
	t.Parallel()

	var seen []Status
	var c *Controller
	var sent Submission
	c = newTestController(t, RelayFunc(func(_ context.Context, s Submission) error {
		seen = append(seen, c.Status())
		sent = s
		return nil
	}))
	seen = append(seen, c.Status())

	status, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	seen = append(seen, status)

	want := []Status{Idle{}, Sending{}, Success{}}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", seen, want)
		}
	}
	if !c.Form().IsZero() {
		t.Fatalf("form after success = %+v, want empty", c.Form())
	}
	if sent.Form != validForm || sent.Subject != "New Portfolio Inquiry" || sent.Honeypot != "" {
		t.Fatalf("relay received %+v", sent)
	}
}

func TestSubmitRejectionKeepsForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"relay message", &RejectionError{StatusCode: 422, Message: "Email is invalid"}, "Email is invalid"},
		{"unparseable body", &RejectionError{StatusCode: 500}, GenericRejectionMessage},
		{"no response", errors.New("dial tcp: connection refused"), GenericConnectivityMessage},
		{"wrapped rejection", errors.Join(errors.New("ctx"), &RejectionError{StatusCode: 400, Message: "Spam"}), "Spam"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestController(t, RelayFunc(func(context.Context, Submission) error { return tt.err }))

			status, err := c.Submit(context.Background())
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if status != (Error{Message: tt.want}) {
				t.Fatalf("status = %#v, want Error{%q}", status, tt.want)
			}
			if c.Form() != validForm {
				t.Fatalf("form = %+v, want unchanged %+v", c.Form(), validForm)
			}
			if !c.CanSubmit() {
				t.Fatal("form should be submittable again after an error")
			}
		})
	}
}

func TestErrorToSendingClearsMessage(t *testing.T) {
	t.Parallel()

	fail := true
	var during Status
	var c *Controller
	c = newTestController(t, RelayFunc(func(context.Context, Submission) error {
		during = c.Status()
		if fail {
			return &RejectionError{StatusCode: 400, Message: "Email is invalid"}
		}
		return nil
	}))

	if status, _ := c.Submit(context.Background()); status != (Error{Message: "Email is invalid"}) {
		t.Fatalf("first submit status = %#v", status)
	}

	fail = false
	if err := c.SetEmail("ada@lovelace.dev"); err != nil {
		t.Fatalf("SetEmail in Error: %v", err)
	}
	status, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if during != (Sending{}) {
		t.Fatalf("status during resubmit = %#v, want Sending", during)
	}
	if status != (Success{}) {
		t.Fatalf("status = %#v, want Success", status)
	}
}

func TestSubmitInvalidStaysIdle(t *testing.T) {
	t.Parallel()

	called := false
	c := NewController(Config{Relay: RelayFunc(func(context.Context, Submission) error {
		called = true
		return nil
	})})
	c.SetName("Ada")
	c.SetEmail("ada@example")
	c.SetMessage("hi")

	if c.CanSubmit() {
		t.Fatal("CanSubmit should be false with an invalid email")
	}
	status, err := c.Submit(context.Background())
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if status != (Idle{}) || called {
		t.Fatalf("status = %#v, relay called = %v", status, called)
	}
}

func TestSendingIsExclusiveAndReadOnly(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	sub, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if sub.Form != validForm {
		t.Fatalf("submission form = %+v", sub.Form)
	}
	if c.CanSubmit() {
		t.Fatal("CanSubmit should be false while sending")
	}
	if _, err := c.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Begin err = %v, want ErrBusy", err)
	}
	if err := c.SetName("Mallory"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("SetName while sending err = %v, want ErrReadOnly", err)
	}
	if err := c.Reset(); !errors.Is(err, ErrNotSuccess) {
		t.Fatalf("Reset while sending err = %v, want ErrNotSuccess", err)
	}

	if _, err := c.Complete(nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := c.Complete(nil); !errors.Is(err, ErrNotSending) {
		t.Fatalf("second Complete err = %v, want ErrNotSending", err)
	}
}

func TestResetAfterSuccess(t *testing.T) {
	t.Parallel()

	c := newTestController(t, RelayFunc(func(context.Context, Submission) error { return nil }))
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := c.Begin(); !errors.Is(err, ErrAlreadySent) {
		t.Fatalf("Begin in Success err = %v, want ErrAlreadySent", err)
	}

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.Status() != (Idle{}) {
		t.Fatalf("status = %#v, want Idle", c.Status())
	}
	if !c.Form().IsZero() {
		t.Fatalf("form = %+v, want empty", c.Form())
	}
	if err := c.Reset(); !errors.Is(err, ErrNotSuccess) {
		t.Fatalf("Reset in Idle err = %v, want ErrNotSuccess", err)
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	for status, want := range map[Status]string{
		Idle{}:               "idle",
		Sending{}:            "sending",
		Success{}:            "success",
		Error{Message: "no"}: "error",
	} {
		if got := status.String(); got != want {
			t.Errorf("%#v.String() = %q, want %q", status, got, want)
		}
	}
}
