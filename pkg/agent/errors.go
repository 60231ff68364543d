package agent

import (
	"errors"
	"fmt"
)

// Op names the remote operation that failed.
type Op string

const (
	OpValidate Op = "validate"
	OpUpdate   Op = "update"
	OpInvoke   Op = "invoke"
	OpDecode   Op = "decode"
)

// ErrNotValidated is returned when a turn is attempted before Validate.
var ErrNotValidated = errors.New("agent has not been validated")

// OpError wraps a remote failure with the operation it happened in.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s agent: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Hint is the user-facing explanation printed before the error detail.
func (e *OpError) Hint() string { return e.Op.Hint() }

// Hint describes a failure of o for the user.
func (o Op) Hint() string {
	switch o {
	case OpValidate:
		return "Error validating Bedrock Agent. Check AGENT_ID and AGENT_ALIAS_ID in the configuration file."
	case OpUpdate:
		return "Error updating Bedrock Agent."
	case OpInvoke:
		return "Error invoking Bedrock Agent."
	case OpDecode:
		return "Error parsing Bedrock Agent response. Check the values of AGENT_ID and AGENT_ALIAS_ID in the configuration file."
	default:
		return "Bedrock Agent error."
	}
}

// OpOf returns the failed operation recorded in err, if any.
func OpOf(err error) (Op, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Op, true
	}
	return "", false
}
