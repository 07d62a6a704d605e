package errors

import (
	stderrors "errors"
	"fmt"
)

type Status string

const (
	// The submitted amount could not be parsed or is out of range.
	InvalidAmount Status = "InvalidAmount"
	// A local pre-check denied the requested stake transition.
	ValidationDenied Status = "ValidationDenied"
	// The RPC node could not be reached or returned a transport-level failure.
	NetworkError Status = "NetworkError"
	// The account does not exist on chain.
	NotFound Status = "NotFound"
	// The account exists but is owned by an unexpected program.
	OwnershipError Status = "OwnershipError"
	// The account data could not be deserialized.
	DecodeError Status = "DecodeError"
	// The node refused the submitted transaction.
	SubmissionRejected Status = "SubmissionRejected"
	// The node already processed this transaction, a resubmit raced confirmation.
	TransactionExists Status = "TransactionExists"
	// Key material could not be loaded or a signature could not be produced.
	SigningError Status = "SigningError"
	// The transaction should be rebuilt against fresh chain state and resubmitted.
	FailedPrecondition Status = "FailedPrecondition"
	UnknownError       Status = "UnknownError"
)

// Reason identifies which rule denied a stake transition.
type Reason string

const (
	WrongState             Reason = "WrongState"
	AlreadyDeactivating    Reason = "AlreadyDeactivating"
	NotAuthorized          Reason = "NotAuthorized"
	StillActive            Reason = "StillActive"
	CoolingDown            Reason = "CoolingDown"
	InsufficientBalance    Reason = "InsufficientBalance"
	AlreadyDelegated       Reason = "AlreadyDelegated"
	BelowMinimumDelegation Reason = "BelowMinimumDelegation"
	TransientStake         Reason = "TransientStake"
	LockupInForce          Reason = "LockupInForce"
	MergeMismatch          Reason = "MergeMismatch"
	AccountExists          Reason = "AccountExists"
)

type Error struct {
	Status  Status `json:"status"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
}

var _ error = &Error{}

func (err *Error) Error() string {
	if err.Reason != "" {
		return fmt.Sprintf("%s/%s: %s", err.Status, err.Reason, err.Message)
	}
	return fmt.Sprintf("%s: %s", err.Status, err.Message)
}

func Errorf(status Status, format string, args ...any) *Error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

// Denyf reports a denied stake transition.
func Denyf(reason Reason, format string, args ...any) *Error {
	return &Error{
		Status:  ValidationDenied,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

func NetworkErrorf(format string, args ...any) *Error {
	return Errorf(NetworkError, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return Errorf(NotFound, format, args...)
}

func SubmissionRejectedf(format string, args ...any) *Error {
	return Errorf(SubmissionRejected, format, args...)
}

func SigningErrorf(format string, args ...any) *Error {
	return Errorf(SigningError, format, args...)
}

// Failed due to an on-chain condition that could resolve in time.
func FailedPreconditionf(format string, args ...any) *Error {
	return Errorf(FailedPrecondition, format, args...)
}

// StatusOf reports the Status of err, unwrapping as needed.
// Errors that did not originate here report UnknownError.
func StatusOf(err error) Status {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Status
	}
	return UnknownError
}

// ReasonOf reports the denial reason of err, or "" if err is not a denial.
func ReasonOf(err error) Reason {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Reason
	}
	return ""
}

// IsDenied reports whether err is a validation denial.
func IsDenied(err error) bool {
	return StatusOf(err) == ValidationDenied
}
