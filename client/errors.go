package client

import (
	"strings"

	"github.com/solsuite/solstake/errors"
)

// CheckError classifies a node or transport error by message, the only
// signal most RPC providers give us.
func CheckError(err error) errors.Status {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "blockhash not found") {
		// stale recent blockhash; rebuild against fresh state and resubmit
		return errors.FailedPrecondition
	}
	if strings.Contains(msg, "transaction already in block chain") ||
		strings.Contains(msg, "transaction has already been processed") {
		return errors.TransactionExists
	}
	if strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "insufficient lamports") ||
		strings.Contains(msg, "custom program error") ||
		strings.Contains(msg, "transaction simulation failed") {
		return errors.SubmissionRejected
	}
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "response body closed") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "eof") {
		return errors.NetworkError
	}
	return errors.UnknownError
}
