// Package rdbi implements the Read Data By Identifier dispatch table.
//
// A Table maps 16-bit data identifiers (DIDs) to handlers that fill a
// response buffer. Lookup is a linear scan to the first matching entry;
// identifiers without an entry fail with NRC 0x31 (request out of range).
//
// Failures are reported as *NRCError values carrying the negative
// response code to send. CodeOf extracts the code from any error chain.
//
// # Validation
//
// Two validators gate a request before dispatch:
//   - ValidateNodeAddress accepts every node address (NAD).
//   - ValidateMessageLength accepts lengths in (0, MaxMessageLength].
//
// The orchestration that calls them lives in package lindiag.
//
// A Table is immutable after construction. Handlers bound to it may hold
// state and are invoked from the caller's execution context.
package rdbi
