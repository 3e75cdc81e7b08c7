package contact

// Status is the state of the contact form submission. It is one of Idle,
// Sending, Success or Error.
type Status interface {
	status()
	String() string
}

type (
	// Idle accepts input and submission.
	Idle struct{}
	// Sending has one relay exchange outstanding; fields are read-only.
	Sending struct{}
	// Success follows an accepted submission.
	Success struct{}
	// Error follows a rejected or failed submission and carries the message
	// shown next to the form.
	Error struct{ Message string }
)

func (Idle) status()    {}
func (Sending) status() {}
func (Success) status() {}
func (Error) status()   {}

func (Idle) String() string    { return "idle" }
func (Sending) String() string { return "sending" }
func (Success) String() string { return "success" }
func (Error) String() string   { return "error" }

// Messages shown when the relay's own message is not available.
const (
	GenericRejectionMessage    = "Something went wrong. Please try again."
	GenericConnectivityMessage = "Unable to send message. Please try again later."
)
