// Package jverrors implements the two-level error taxonomy described by the
// Error Taxonomy component: NativeFailure categorises raw JV-Link return
// codes, LibraryError wraps a NativeFailure (or a validation/cancellation/
// queue-overflow condition) into one library-level error type.
package jverrors

import "fmt"

// NativeCode is a raw 32-bit return code as reported by the native
// component. 0 is success; -1 and -3 are control signals handled before
// they ever reach this package (see client.ReadOutcome); any other
// negative value is an error.
type NativeCode int32

// NativeTimeout is the synthetic code assigned when the Apartment
// Dispatcher's call timer wins the race against a dispatched call.
const NativeTimeout NativeCode = -999

// NativeKind discriminates the categories of NativeFailure.
type NativeKind int

const (
	// KindCommunication covers the table-mapped negative return codes
	// from the native component, including the synthetic timeout code.
	KindCommunication NativeKind = iota
	// KindActivation covers failure to create/attach to the native
	// component (its out-of-process server could not be started/found).
	KindActivation
	// KindUnsupported covers a call the native component rejected as not
	// implemented for the caller's service key / version.
	KindUnsupported
	// KindInvalidState covers a call made while the orchestrator is in a
	// state that forbids it (reentrancy violation, poisoned, not open).
	KindInvalidState
	// KindUnexpected covers anything the other four kinds do not name —
	// kept narrow and always logged with its raw reason.
	KindUnexpected
)

func (k NativeKind) String() string {
	switch k {
	case KindCommunication:
		return "communication_failure"
	case KindActivation:
		return "activation_failure"
	case KindUnsupported:
		return "unsupported"
	case KindInvalidState:
		return "invalid_state"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// NativeFailure is a typed, classified failure originating at or below the
// Client Contract boundary.
type NativeFailure struct {
	Kind    NativeKind
	Code    NativeCode // meaningful for KindCommunication; 0 otherwise
	Reason  string
	Message string
}

func (f *NativeFailure) Error() string {
	if f.Kind == KindCommunication {
		return fmt.Sprintf("%s: code=%d %s", f.Kind, f.Code, f.Message)
	}
	if f.Reason != "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
	}
	return f.Kind.String()
}

// IsTimeout reports whether f is the synthetic dispatcher-timeout failure.
func (f *NativeFailure) IsTimeout() bool {
	return f != nil && f.Kind == KindCommunication && f.Code == NativeTimeout
}

// CommunicationFailure builds a KindCommunication NativeFailure for code,
// looking up its human-readable message in the return-code table.
func CommunicationFailure(code NativeCode) *NativeFailure {
	return &NativeFailure{
		Kind:    KindCommunication,
		Code:    code,
		Message: messageFor(code),
	}
}

// TimeoutFailure builds the synthetic NativeFailure recorded when the
// Apartment Dispatcher poisons an orchestrator.
func TimeoutFailure() *NativeFailure {
	return CommunicationFailure(NativeTimeout)
}

// ActivationFailure builds a KindActivation NativeFailure.
func ActivationFailure(reason string) *NativeFailure {
	return &NativeFailure{Kind: KindActivation, Reason: reason}
}

// UnsupportedFailure builds a KindUnsupported NativeFailure.
func UnsupportedFailure(reason string) *NativeFailure {
	return &NativeFailure{Kind: KindUnsupported, Reason: reason}
}

// InvalidStateFailure builds a KindInvalidState NativeFailure.
func InvalidStateFailure(reason string) *NativeFailure {
	return &NativeFailure{Kind: KindInvalidState, Reason: reason}
}

// UnexpectedFailure builds a KindUnexpected NativeFailure.
func UnexpectedFailure(reason string) *NativeFailure {
	return &NativeFailure{Kind: KindUnexpected, Reason: reason}
}

// recoverableBySkip is the fixed set of communication codes the Session
// Orchestrator retries, then resolves with skip() (spec.md §4.2, §4.6).
// These indicate a downloaded artefact that is sized wrong, unopenable, or
// corrupted — conditions a retry of the same read can plausibly clear, and
// if not, skipping to the next record lets the stream continue.
var recoverableBySkip = map[NativeCode]bool{
	-402: true,
	-403: true,
	-411: true,
}

// RecoverableBySkip reports whether code is in the bounded-retry-then-skip
// class.
func RecoverableBySkip(code NativeCode) bool {
	return recoverableBySkip[code]
}

// codeMessages maps raw negative return codes to a human-readable message.
// -1 (file boundary) and -3 (download pending) are control signals handled
// by client.ReadOutcome and never reach this table.
var codeMessages = map[NativeCode]string{
	-2:   "parameter error",
	-100: "not initialised: call init before open",
	-101: "already initialised with a different sid",
	-102: "invalid sid",
	-111: "failed to connect to the JV-Link service",
	-112: "service key rejected",
	-201: "no data available for the requested spec/key",
	-202: "the requested spec or key is out of range",
	-301: "read called with no session open",
	-302: "read called after end-of-stream",
	-402: "downloaded file has an unexpected size",
	-403: "downloaded file could not be opened",
	-411: "downloaded file failed a checksum/corruption check",
	-503:         "save-path does not exist or is not writable",
	NativeTimeout: "call did not return before its timeout elapsed",
}

func messageFor(code NativeCode) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("unclassified native failure (code %d)", code)
}
