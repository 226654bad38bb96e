package rdbi

import (
	"errors"
	"fmt"
)

// NRC is a negative response code (ISO 14229-1).
type NRC uint8

// Negative response codes.
const (
	NRCGeneralReject                          NRC = 0x10
	NRCServiceNotSupported                    NRC = 0x11
	NRCSubFunctionNotSupported                NRC = 0x12
	NRCIncorrectMessageLength                 NRC = 0x13
	NRCResponseTooLong                        NRC = 0x14
	NRCBusyRepeatRequest                      NRC = 0x21
	NRCConditionsNotCorrect                   NRC = 0x22
	NRCRequestSequenceError                   NRC = 0x24
	NRCNoResponseFromSubnetComponent          NRC = 0x25
	NRCFailurePreventsExecution               NRC = 0x26
	NRCRequestOutOfRange                      NRC = 0x31
	NRCSecurityAccessDenied                   NRC = 0x33
	NRCInvalidKey                             NRC = 0x35
	NRCExceedNumberOfAttempts                 NRC = 0x36
	NRCRequiredTimeDelayNotExpired            NRC = 0x37
	NRCResponsePending                        NRC = 0x78
	NRCSubFunctionNotSupportedInActiveSession NRC = 0x7E
	NRCServiceNotSupportedInActiveSession     NRC = 0x7F
)

// String returns the NRC name.
func (c NRC) String() string {
	switch c {
	case NRCGeneralReject:
		return "GENERAL_REJECT"
	case NRCServiceNotSupported:
		return "SERVICE_NOT_SUPPORTED"
	case NRCSubFunctionNotSupported:
		return "SUBFUNCTION_NOT_SUPPORTED"
	case NRCIncorrectMessageLength:
		return "INCORRECT_MESSAGE_LENGTH"
	case NRCResponseTooLong:
		return "RESPONSE_TOO_LONG"
	case NRCBusyRepeatRequest:
		return "BUSY_REPEAT_REQUEST"
	case NRCConditionsNotCorrect:
		return "CONDITIONS_NOT_CORRECT"
	case NRCRequestSequenceError:
		return "REQUEST_SEQUENCE_ERROR"
	case NRCNoResponseFromSubnetComponent:
		return "NO_RESPONSE_FROM_SUBNET_COMPONENT"
	case NRCFailurePreventsExecution:
		return "FAILURE_PREVENTS_EXECUTION"
	case NRCRequestOutOfRange:
		return "REQUEST_OUT_OF_RANGE"
	case NRCSecurityAccessDenied:
		return "SECURITY_ACCESS_DENIED"
	case NRCInvalidKey:
		return "INVALID_KEY"
	case NRCExceedNumberOfAttempts:
		return "EXCEED_NUMBER_OF_ATTEMPTS"
	case NRCRequiredTimeDelayNotExpired:
		return "REQUIRED_TIME_DELAY_NOT_EXPIRED"
	case NRCResponsePending:
		return "RESPONSE_PENDING"
	case NRCSubFunctionNotSupportedInActiveSession:
		return "SUBFUNCTION_NOT_SUPPORTED_IN_ACTIVE_SESSION"
	case NRCServiceNotSupportedInActiveSession:
		return "SERVICE_NOT_SUPPORTED_IN_ACTIVE_SESSION"
	default:
		return "UNKNOWN"
	}
}

// Dispatch and validation errors.
var (
	ErrInvalidLength      = errors.New("invalid message length")
	ErrUnsupportedDID     = errors.New("unsupported data identifier")
	ErrBufferTooSmall     = errors.New("response buffer too small")
	ErrInvalidNodeAddress = errors.New("invalid node address")
)

// NRCError is a failure that maps to a negative response.
type NRCError struct {
	Code NRC
	Err  error
}

// NewNRCError returns an error carrying code.
func NewNRCError(code NRC, err error) *NRCError {
	return &NRCError{Code: code, Err: err}
}

func (e *NRCError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nrc 0x%02X (%s): %v", uint8(e.Code), e.Code, e.Err)
	}
	return fmt.Sprintf("nrc 0x%02X (%s)", uint8(e.Code), e.Code)
}

func (e *NRCError) Unwrap() error {
	return e.Err
}

// CodeOf returns the NRC carried by err. Errors without one map to
// NRCGeneralReject; nil maps to 0.
func CodeOf(err error) NRC {
	if err == nil {
		return 0
	}
	var nrcErr *NRCError
	if errors.As(err, &nrcErr) {
		return nrcErr.Code
	}
	return NRCGeneralReject
}
