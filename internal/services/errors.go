package services

import (
	"errors"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidState
	KindPolicyViolation
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindPolicyViolation:
		return "policy_violation"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is a domain failure with a message fit for end users.
type Error struct {
	Kind   Kind
	Reason string
	cause  *Error
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

func newError(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// withReason keeps sentinel matching while replacing the message.
func withReason(sentinel *Error, reason string) error {
	return &Error{Kind: sentinel.Kind, Reason: reason, cause: sentinel}
}

// KindOf reports the domain kind of err, zero when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

var (
	ErrAccountNotFound     = newError(KindNotFound, "User not found")
	ErrTaskNotFound        = newError(KindNotFound, "Task not found")
	ErrBoostNotFound       = newError(KindNotFound, "Boost not found")
	ErrSettingNotFound     = newError(KindNotFound, "Setting not found")
	ErrTransactionNotFound = newError(KindNotFound, "Transaction not found")

	ErrAlreadyRunning        = newError(KindInvalidState, "Farming session already active")
	ErrNoActiveSession       = newError(KindInvalidState, "No active farming session")
	ErrNotYetComplete        = newError(KindInvalidState, "Farming not yet complete")
	ErrAlreadyCompleted      = newError(KindInvalidState, "Task already completed")
	ErrTransactionNotPending = newError(KindInvalidState, "Only pending withdrawals can change status")

	ErrInsufficientBalance  = newError(KindPolicyViolation, "Insufficient balance")
	ErrWithdrawalNotAllowed = newError(KindPolicyViolation, "Withdrawal not allowed")
	ErrWithdrawalsDisabled  = newError(KindPolicyViolation, "Withdrawals are currently disabled")
	ErrDepositsDisabled     = newError(KindPolicyViolation, "Deposits are currently disabled")
	ErrTaskNotVerified      = newError(KindPolicyViolation, "Task requirements not met")

	ErrInvalidAmount  = newError(KindValidation, "Invalid amount")
	ErrInvalidStatus  = newError(KindValidation, "Invalid status")
	ErrNotAWithdrawal = newError(KindValidation, "Transaction is not a withdrawal")
	ErrInvalidSetting = newError(KindValidation, "Invalid setting")
	ErrInvalidCatalog = newError(KindValidation, "Invalid catalog entry")
)
