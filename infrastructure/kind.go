package infrastructure

// Error carries a caller-facing message tied to one of the taxonomy kinds.
// errors.Is(err, Err<Kind>) matches through Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds a taxonomy error with a stable caller-facing message.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}
