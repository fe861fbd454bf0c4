package fetch

import "fmt"

// Kind classifies a failed operation so callers can decide how loudly
// to surface it.
type Kind int

const (
	// KindTransport covers network failures and non-2xx statuses.
	KindTransport Kind = iota
	// KindDecode covers bodies that are not valid JSON or are missing
	// the expected fields.
	KindDecode
	// KindNotConfigured means the required endpoint binding is absent.
	KindNotConfigured
	// KindApplication is a well-formed response with success=false.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindNotConfigured:
		return "not configured"
	case KindApplication:
		return "application"
	default:
		return "transport"
	}
}

// Error is the typed failure returned by every client operation.
// Message holds the server-supplied text for application errors and is
// shown to the user verbatim when present.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error returned by this
// package. The second return is false for foreign errors.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if ok := asError(err, &fe); ok {
		return fe.Kind, true
	}
	return 0, false
}

// UserMessage returns the text to surface for err: the server-supplied
// message when present, else the given fallback.
func UserMessage(err error, fallback string) string {
	var fe *Error
	if asError(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return fallback
}
