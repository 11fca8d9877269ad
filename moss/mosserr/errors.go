// Package mosserr defines the error kinds the MOSS decoder can return
// and formats the diagnostic message for a protocol violation.
//
// Grounded on the teacher's sentinel-error style (jpeg/common/errors.go):
// one package-level errors.New per failure kind, with a richer struct
// (ProtocolError) wrapping the sentinel for callers who want the byte
// offset and lookahead context.
package mosserr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoHeader means the buffer holds no unit frame header from the
	// given start index. Terminal (not an error) for DecodeAll draining
	// to end of stream; an error for a caller that asked for one packet.
	ErrNoHeader = errors.New("moss: no unit frame header found")

	// ErrProtocol means the FSM received a byte whose class is not a
	// legal successor of its current state. Always wrapped by
	// *ProtocolError; test with errors.Is.
	ErrProtocol = errors.New("moss: protocol error")

	// ErrUnexpectedEOF means the FSM did not reach its DONE state
	// before the buffer was exhausted. Wrapped by *ProtocolError with
	// an empty lookahead, per the "unexpected end of buffer is a
	// protocol error with class none" rule.
	ErrUnexpectedEOF = errors.New("moss: unexpected end of buffer")
)

// maxLookahead bounds how many trailing bytes a ProtocolError captures
// for diagnostics.
const maxLookahead = 10

// ProtocolError carries everything needed to diagnose a malformed MOSS
// stream: the offending byte (if any), its absolute index in the input
// buffer, the FSM state name at the time, the set of classes that would
// have been legal there, and a short lookahead snippet.
type ProtocolError struct {
	Index     int
	State     string
	Expected  []string
	Byte      byte
	HasByte   bool
	Lookahead []byte
}

// NewProtocolError builds a ProtocolError for an illegal transition: buf
// is the full input, index is the offending byte's position, state names
// the FSM state, and expected lists the word classes that were legal.
func NewProtocolError(buf []byte, index int, state string, expected []string) *ProtocolError {
	end := index + 1 + maxLookahead
	if end > len(buf) {
		end = len(buf)
	}
	lookahead := append([]byte(nil), buf[index+1:end]...)
	return &ProtocolError{
		Index:     index,
		State:     state,
		Expected:  expected,
		Byte:      buf[index],
		HasByte:   true,
		Lookahead: lookahead,
	}
}

// NewProtocolErrorWithLookahead builds a ProtocolError from an
// already-sliced lookahead rather than the full buffer, for callers
// (such as the iterator-driven extractor) that never hold a plain
// buf/index pair.
// lookahead is truncated to maxLookahead if longer.
func NewProtocolErrorWithLookahead(b byte, index int, state string, expected []string, lookahead []byte) *ProtocolError {
	if len(lookahead) > maxLookahead {
		lookahead = lookahead[:maxLookahead]
	}
	return &ProtocolError{
		Index:     index,
		State:     state,
		Expected:  expected,
		Byte:      b,
		HasByte:   true,
		Lookahead: lookahead,
	}
}

// NewUnexpectedEOF builds a ProtocolError for a buffer that ran out
// before the FSM reached DONE: there is no offending byte, so HasByte is
// false and Lookahead is empty.
func NewUnexpectedEOF(bufLen int, state string, expected []string) *ProtocolError {
	return &ProtocolError{
		Index:    bufLen,
		State:    state,
		Expected: expected,
		HasByte:  false,
	}
}

// Error formats the diagnostic: "Protocol error: expected <classes>,
// got: 0xHH | 0xHH <-- [0xNN, 0xNN, ...]" for an illegal byte, or a
// shorter end-of-buffer variant when there is none.
func (e *ProtocolError) Error() string {
	expected := strings.Join(e.Expected, "/")
	if !e.HasByte {
		return fmt.Sprintf("Protocol error: expected %s, got: none (reached end of buffer at index %d)", expected, e.Index)
	}
	return fmt.Sprintf("Protocol error: expected %s, got: 0x%02X | 0x%02X <-- %s",
		expected, e.Byte, e.Byte, formatLookahead(e.Lookahead))
}

// Unwrap lets callers use errors.Is(err, ErrProtocol) /
// errors.Is(err, ErrUnexpectedEOF) against a wrapped *ProtocolError.
func (e *ProtocolError) Unwrap() error {
	if !e.HasByte {
		return ErrUnexpectedEOF
	}
	return ErrProtocol
}

func formatLookahead(bs []byte) string {
	if len(bs) == 0 {
		return "[]"
	}
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = fmt.Sprintf("0x%X", b)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
