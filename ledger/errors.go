package ledger

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the registry daemon.
	ErrConnectionFailed = errors.New("ledger: connection failed")

	// ErrInvalidResponse indicates the daemon returned a malformed or
	// unexpected response.
	ErrInvalidResponse = errors.New("ledger: invalid response")

	// ErrEntryNotFound indicates the requested entry position does not exist.
	ErrEntryNotFound = errors.New("ledger: entry not found")
)

// Kind classifies why a registration failed.
type Kind int

const (
	// KindOther covers broadcast failures, reverts, and any rejection
	// that is not a signer decline.
	KindOther Kind = iota

	// KindUserRejected means the signer declined the transaction.
	KindUserRejected
)

// String returns the persisted/displayed form of the kind.
func (k Kind) String() string {
	if k == KindUserRejected {
		return "user_rejected"
	}
	return "other"
}

// RegistrationError is a typed registration failure. The kind is
// assigned at the client boundary from the daemon's structured error
// code, so callers never have to match on message text.
type RegistrationError struct {
	Kind    Kind
	Message string
}

func (e *RegistrationError) Error() string {
	return "ledger: registration failed: " + e.Message
}

// UserRejected reports whether err is a registration failure caused by
// the signer declining.
func UserRejected(err error) bool {
	var regErr *RegistrationError
	return errors.As(err, &regErr) && regErr.Kind == KindUserRejected
}
