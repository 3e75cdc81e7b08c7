package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// Form field names understood by the relay.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldMessage  = "message"
	FieldSubject  = "_subject"
	FieldHoneypot = "_honey"
)

// DefaultRelayTimeout bounds one exchange with the relay.
const DefaultRelayTimeout = 30 * time.Second

// maxErrorBody caps how much of a rejection body is read.
const maxErrorBody = 64 << 10

// Submission is everything sent to the relay for one attempt.
type Submission struct {
	Form
	Subject string
	// Honeypot is the hidden anti-spam field. People never fill it in.
	Honeypot string
}

// Relay forwards a submission to whoever reads the contact inbox.
type Relay interface {
	Send(ctx context.Context, s Submission) error
}

// RelayFunc adapts a function to the Relay interface.
type RelayFunc func(ctx context.Context, s Submission) error

func (f RelayFunc) Send(ctx context.Context, s Submission) error { return f(ctx, s) }

// RejectionError is returned when the relay answered with a non-success
// status. Message is the relay's first error message, or empty when the
// body did not carry one.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay rejected submission: status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay rejected submission: status %d: %s", e.StatusCode, e.Message)
}

// HTTPRelay posts submissions as multipart form data to a hosted form
// endpoint such as Formspree and asks for a JSON answer.
type HTTPRelay struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

// NewHTTPRelay returns a relay for url. A non-positive timeout selects
// DefaultRelayTimeout.
func NewHTTPRelay(url string, timeout time.Duration, logger *slog.Logger) *HTTPRelay {
	if timeout <= 0 {
		timeout = DefaultRelayTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPRelay{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

// Send issues exactly one POST. Transport failures are returned as is; a
// non-2xx answer becomes a *RejectionError.
func (r *HTTPRelay) Send(ctx context.Context, s Submission) error {
	body, contentType, err := encodeSubmission(s)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, body)
	if err != nil {
		return fmt.Errorf("building relay request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.Client.Do(req)
	if err != nil {
		r.Logger.Warn("contact relay unreachable", "error", err, "elapsed", time.Since(start))
		return fmt.Errorf("posting to relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		r.Logger.Info("contact message relayed", "status", resp.StatusCode, "elapsed", time.Since(start))
		return nil
	}

	rej := &RejectionError{
		StatusCode: resp.StatusCode,
		Message:    firstErrorMessage(io.LimitReader(resp.Body, maxErrorBody)),
	}
	r.Logger.Warn("contact relay rejected message", "status", resp.StatusCode, "message", rej.Message)
	return rej
}

func encodeSubmission(s Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{FieldName, s.Name},
		{FieldEmail, s.Email},
		{FieldMessage, s.Message},
		{FieldSubject, s.Subject},
		{FieldHoneypot, s.Honeypot},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// relayErrorBody is the failure shape: {"errors":[{"message":"..."}]}.
type relayErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// firstErrorMessage returns the first error message in body, or "" when the
// body is empty, malformed or has no message.
func firstErrorMessage(body io.Reader) string {
	var parsed relayErrorBody
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return ""
	}
	if len(parsed.Errors) == 0 {
		return ""
	}
	return parsed.Errors[0].Message
}
