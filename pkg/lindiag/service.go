package lindiag

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linecu/linecu-go/pkg/log"
	"github.com/linecu/linecu-go/pkg/rdbi"
)

// Frame layout constants.
const (
	// BufferSize is the size of the diagnostic frame buffer.
	BufferSize = 32

	// ServiceIDReadDataByIdentifier is the RDBI service identifier.
	ServiceIDReadDataByIdentifier uint8 = 0x22

	// PositiveResponseOffset is added to a service identifier for its
	// positive response.
	PositiveResponseOffset uint8 = 0x40

	// NegativeResponseID starts a negative response frame.
	NegativeResponseID uint8 = 0x7F

	// ResponseHeaderSize is the number of DID bytes counted in DataLength
	// on a positive response.
	ResponseHeaderSize = 2

	// ResponseDataOffset is where handler data starts in the buffer.
	ResponseDataOffset = 3
)

// ErrFrameTooLarge is returned by Handle when a request does not fit the buffer.
var ErrFrameTooLarge = errors.New("request frame exceeds diagnostic buffer")

// Transmitter sends diagnostic responses on the bus.
type Transmitter interface {
	SendPositiveResponse()
	SendNegativeResponse(code rdbi.NRC)
}

// ParseIdentifier extracts the big-endian DID from bytes 1 and 2 of buf.
func ParseIdentifier(buf []byte) rdbi.DID {
	return rdbi.DID(binary.BigEndian.Uint16(buf[1:3]))
}

// Service runs ReadDataByIdentifier requests against a dispatch table.
type Service struct {
	// Buffer holds the current request and, after a positive response,
	// the response data.
	Buffer [BufferSize]byte

	// DataLength is the request length on entry and the response length
	// after a positive response.
	DataLength uint16

	table *rdbi.Table
	tx    Transmitter

	nodeAddress uint8
	validateNAD rdbi.NodeAddressValidator
	logger      *slog.Logger
	eventLogger log.Logger
	sessionID   string
	lastNRC     rdbi.NRC
}

// Option configures a Service.
type Option func(*Service)

// WithNodeAddress sets the node address checked before each request.
func WithNodeAddress(nad uint8) Option {
	return func(s *Service) {
		s.nodeAddress = nad
	}
}

// WithNodeAddressValidator replaces the node address check.
func WithNodeAddressValidator(v rdbi.NodeAddressValidator) Option {
	return func(s *Service) {
		if v != nil {
			s.validateNAD = v
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventLogger sets the logger receiving request and response events.
func WithEventLogger(l log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.eventLogger = l
		}
	}
}

// WithSessionID sets the session identifier stamped on events.
func WithSessionID(id string) Option {
	return func(s *Service) {
		s.sessionID = id
	}
}

// NewService creates a service dispatching to table and answering via tx.
func NewService(table *rdbi.Table, tx Transmitter, opts ...Option) *Service {
	s := &Service{
		table:       table,
		tx:          tx,
		validateNAD: rdbi.ValidateNodeAddress,
		logger:      slog.Default(),
		eventLogger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadDataByIdentifier processes the request currently in Buffer.
//
// The node address and message length are validated first; dispatch is
// skipped when either check fails. Exactly one response is sent. The
// returned error carries the negative response code, if any.
func (s *Service) ReadDataByIdentifier() error {
	start := time.Now()
	id := ParseIdentifier(s.Buffer[:])
	s.logRequest(id)

	err := s.validateNAD(s.nodeAddress)
	if err == nil {
		err = rdbi.ValidateMessageLength(s.DataLength)
	}

	var size uint8
	if err == nil {
		size, err = s.table.Dispatch(id, s.Buffer[ResponseDataOffset:])
	}

	if err != nil {
		code := rdbi.CodeOf(err)
		s.lastNRC = code
		s.logger.Debug("lindiag: negative response", "did", id.String(), "nrc", code.String(), "error", err)
		s.logResponse(id, log.DiagNegativeResponse, s.DataLength, &code, nil, time.Since(start))
		s.tx.SendNegativeResponse(code)
		return fmt.Errorf("read %s: %w", id, err)
	}

	s.DataLength = uint16(size) + ResponseHeaderSize
	data := s.Buffer[ResponseDataOffset : ResponseDataOffset+int(size)]
	s.logger.Debug("lindiag: positive response", "did", id.String(), "length", s.DataLength)
	s.logResponse(id, log.DiagPositiveResponse, s.DataLength, nil, data, time.Since(start))
	s.tx.SendPositiveResponse()
	return nil
}

// Handle copies request into the buffer with the given message length,
// runs ReadDataByIdentifier and returns the response frame.
//
// A positive response is 0x62 followed by the DID and the data. A
// negative response is 0x7F 0x22 followed by the reason code and is
// returned together with the error.
func (s *Service) Handle(request []byte, length uint16) ([]byte, error) {
	if len(request) > BufferSize {
		return nil, ErrFrameTooLarge
	}
	if len(request) < ResponseDataOffset {
		return nil, fmt.Errorf("request frame too short: %d bytes", len(request))
	}

	s.Buffer = [BufferSize]byte{}
	copy(s.Buffer[:], request)
	s.DataLength = length

	if err := s.ReadDataByIdentifier(); err != nil {
		return []byte{NegativeResponseID, ServiceIDReadDataByIdentifier, byte(s.lastNRC)}, err
	}

	end := ResponseDataOffset + int(s.DataLength) - ResponseHeaderSize
	resp := make([]byte, end)
	copy(resp, s.Buffer[:end])
	resp[0] = ServiceIDReadDataByIdentifier + PositiveResponseOffset
	return resp, nil
}

func (s *Service) logRequest(id rdbi.DID) {
	s.eventLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Component: log.ComponentDiag,
		Category:  log.CategoryDiag,
		Diag: &log.DiagEvent{
			Type:      log.DiagRequest,
			ServiceID: ServiceIDReadDataByIdentifier,
			DID:       uint16(id),
			Length:    s.DataLength,
		},
	})
}

func (s *Service) logResponse(id rdbi.DID, typ log.DiagType, length uint16, code *rdbi.NRC, data []byte, elapsed time.Duration) {
	ev := &log.DiagEvent{
		Type:           typ,
		ServiceID:      ServiceIDReadDataByIdentifier,
		DID:            uint16(id),
		Length:         length,
		ProcessingTime: &elapsed,
	}
	if code != nil {
		nrc := uint8(*code)
		ev.NRC = &nrc
	}
	if len(data) > 0 {
		ev.Data = append([]byte(nil), data...)
	}
	s.eventLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Component: log.ComponentDiag,
		Category:  log.CategoryDiag,
		Diag:      ev,
	})
}
