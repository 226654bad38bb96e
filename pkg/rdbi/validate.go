package rdbi

import "fmt"

// MaxMessageLength is the largest accepted request data length.
const MaxMessageLength = 32

// NodeAddressValidator decides whether a request addressed to nad is served.
type NodeAddressValidator func(nad uint8) error

// ValidateNodeAddress accepts every node address.
// It is the hook for node address filtering; keep it accept-all until a
// filter is defined.
func ValidateNodeAddress(uint8) error {
	return nil
}

// ValidateMessageLength accepts 0 < length <= MaxMessageLength.
func ValidateMessageLength(length uint16) error {
	if length > 0 && length <= MaxMessageLength {
		return nil
	}
	return NewNRCError(NRCRequestOutOfRange,
		fmt.Errorf("%w: %d not in 1..%d", ErrInvalidLength, length, MaxMessageLength))
}
