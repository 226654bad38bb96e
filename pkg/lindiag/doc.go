// Package lindiag implements the LIN diagnostic ReadDataByIdentifier
// service on top of an rdbi dispatch table.
//
// A Service owns the diagnostic frame buffer and the current message
// length, the pair a LIN stack normally exposes as globals. The request
// layout is:
//
//	Buffer[0]    service identifier (0x22)
//	Buffer[1:3]  data identifier, big-endian
//	Buffer[3:]   response data written by the DID handler
//
// On success DataLength is set to the response size plus the two DID
// bytes and the Transmitter is asked to send a positive response. On
// failure the Transmitter receives the negative response code.
//
// Example usage:
//
//	svc := lindiag.NewService(rdbi.DefaultTable(), tx)
//	resp, err := svc.Handle([]byte{0x22, 0xF3, 0x08}, 3)
//	// resp == []byte{0x62, 0xF3, 0x08, 0x01}
//
// A Service is not safe for concurrent use.
package lindiag
