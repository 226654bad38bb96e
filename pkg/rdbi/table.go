package rdbi

import (
	"errors"
	"fmt"
	"log/slog"
)

// DID is a 16-bit data identifier.
type DID uint16

// String returns the DID in the 0xXXXX form.
func (d DID) String() string {
	return fmt.Sprintf("0x%04X", uint16(d))
}

// Handler produces the response data for one DID.
//
// out is the full response buffer. size is the preset response size from
// the table entry; the handler returns the final size. A failing handler
// returns an *NRCError with its reason code.
type Handler interface {
	ReadData(out []byte, size uint8) (uint8, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(out []byte, size uint8) (uint8, error)

// ReadData calls f.
func (f HandlerFunc) ReadData(out []byte, size uint8) (uint8, error) {
	return f(out, size)
}

// Entry binds a DID to its handler.
type Entry struct {
	// ID is the data identifier.
	ID DID

	// Size is the response size in bytes handed to the handler.
	Size uint8

	// Name is a short label for logs.
	Name string

	// Handler fills the response.
	Handler Handler
}

// Table is an ordered DID dispatch table.
type Table struct {
	entries  []Entry
	fallback Handler
	logger   *slog.Logger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithLogger sets the logger used for dispatch results.
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTable creates a table from entries. Entries are scanned in order and
// the first entry matching a DID wins.
func NewTable(entries []Entry, opts ...TableOption) *Table {
	t := &Table{
		entries:  append([]Entry(nil), entries...),
		fallback: HandlerFunc(requestOutOfRange),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Entries returns a copy of the table entries.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Lookup returns the first entry for id.
func (t *Table) Lookup(id DID) (Entry, bool) {
	for _, e := range t.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Dispatch runs the handler bound to id against out and returns the
// response size. Unknown identifiers fail with NRCRequestOutOfRange.
func (t *Table) Dispatch(id DID, out []byte) (uint8, error) {
	entry, ok := t.Lookup(id)
	if !ok {
		size, err := t.fallback.ReadData(out, 0)
		t.logger.Debug("rdbi: unsupported identifier", "did", id.String())
		return size, err
	}

	if int(entry.Size) > len(out) {
		return 0, NewNRCError(NRCResponseTooLong,
			fmt.Errorf("%w: %s needs %d bytes, have %d", ErrBufferTooSmall, id, entry.Size, len(out)))
	}
	if entry.Handler == nil {
		return 0, NewNRCError(NRCGeneralReject, fmt.Errorf("no handler bound to %s", id))
	}

	size, err := entry.Handler.ReadData(out, entry.Size)
	if err != nil {
		var nrcErr *NRCError
		if !errors.As(err, &nrcErr) {
			err = NewNRCError(NRCGeneralReject, err)
		}
		t.logger.Debug("rdbi: handler failed", "did", id.String(), "name", entry.Name, "nrc", CodeOf(err).String(), "error", err)
		return size, err
	}
	if int(size) > len(out) {
		return 0, NewNRCError(NRCResponseTooLong,
			fmt.Errorf("%w: %s returned %d bytes, have %d", ErrBufferTooSmall, id, size, len(out)))
	}

	t.logger.Debug("rdbi: read", "did", id.String(), "name", entry.Name, "size", size)
	return size, nil
}

func requestOutOfRange([]byte, uint8) (uint8, error) {
	return 0, NewNRCError(NRCRequestOutOfRange, ErrUnsupportedDID)
}
