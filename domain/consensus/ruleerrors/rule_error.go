package ruleerrors

import (
	"fmt"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrTimestampTooFarInFuture indicates the header timestamp is
	// ahead of the allowed deviation from the verifier's captured
	// current time.
	ErrTimestampTooFarInFuture = newRuleError("ErrTimestampTooFarInFuture")

	// ErrNegativeTarget indicates the header's compact difficulty
	// encodes a negative target.
	ErrNegativeTarget = newRuleError("ErrNegativeTarget")

	// ErrTargetTooHigh indicates the header's target is above the
	// network's proof-of-work limit.
	ErrTargetTooHigh = newRuleError("ErrTargetTooHigh")

	// ErrInvalidPoW indicates that the block proof-of-work is invalid.
	ErrInvalidPoW = newRuleError("ErrInvalidPoW")

	// ErrNoTransactions indicates the block does not have at least one
	// transaction. A valid block must have at least the coinbase
	// transaction.
	ErrNoTransactions = newRuleError("ErrNoTransactions")

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase transaction.
	ErrFirstTxNotCoinbase = newRuleError("ErrFirstTxNotCoinbase")

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases = newRuleError("ErrMultipleCoinbases")

	// ErrDuplicateTx indicates a block contains an identical
	// transaction more than once.
	ErrDuplicateTx = newRuleError("ErrDuplicateTx")

	// ErrBadMerkleRoot indicates the calculated merkle root does not
	// match the expected value.
	ErrBadMerkleRoot = newRuleError("ErrBadMerkleRoot")

	// ErrBlockSizeTooHigh indicates the serialized block size exceeds
	// the maximum allowed by the limits policy.
	ErrBlockSizeTooHigh = newRuleError("ErrBlockSizeTooHigh")

	// ErrBlockSigOpsTooHigh indicates the aggregate signature-operation
	// count across the block's transactions exceeds the maximum allowed
	// by the limits policy. This is a block-level violation regardless
	// of which transaction contributed the excess.
	ErrBlockSigOpsTooHigh = newRuleError("ErrBlockSigOpsTooHigh")

	// ErrNoTxInputs indicates a non-coinbase transaction does not have
	// any inputs.
	ErrNoTxInputs = newRuleError("ErrNoTxInputs")

	// ErrDuplicateTxInputs indicates a transaction references the same
	// previous output more than once.
	ErrDuplicateTxInputs = newRuleError("ErrDuplicateTxInputs")

	// ErrBadTxOutValue indicates an output value of a transaction is
	// out of range, either by itself or summed with the transaction's
	// other outputs.
	ErrBadTxOutValue = newRuleError("ErrBadTxOutValue")

	// ErrTxSizeTooHigh indicates the serialized transaction size
	// exceeds the maximum allowed by the limits policy.
	ErrTxSizeTooHigh = newRuleError("ErrTxSizeTooHigh")

	// ErrTxSigOpsTooHigh indicates a single transaction's
	// signature-operation count exceeds the maximum allowed by the
	// limits policy.
	ErrTxSigOpsTooHigh = newRuleError("ErrTxSigOpsTooHigh")

	// ErrCoinbaseInMempool indicates a coinbase transaction was
	// submitted through the mempool verification path.
	ErrCoinbaseInMempool = newRuleError("ErrCoinbaseInMempool")

	// ErrImmatureSpend indicates a transaction is attempting to spend a
	// coinbase output that has not yet reached the required maturity.
	ErrImmatureSpend = newRuleError("ErrImmatureSpend")

	// ErrSpendTooHigh indicates a transaction is attempting to spend
	// more value than the sum of all of its inputs.
	ErrSpendTooHigh = newRuleError("ErrSpendTooHigh")

	// ErrUnfinalizedTx indicates a transaction has not been finalized
	// at the height and time it is being accepted for.
	ErrUnfinalizedTx = newRuleError("ErrUnfinalizedTx")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many
// validation rules. The caller can use errors.As to determine whether a
// failure was specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// ErrMissingTxOut indicates a transaction output referenced by an input
// does not exist in any of the views consulted during acceptance.
type ErrMissingTxOut struct {
	MissingOutpoints []externalapi.Outpoint
}

func (e ErrMissingTxOut) Error() string {
	return fmt.Sprintf("missing the following outpoints: %v", e.MissingOutpoints)
}

// NewErrMissingTxOut creates a new ErrMissingTxOut error wrapped in a RuleError
func NewErrMissingTxOut(missingOutpoints []externalapi.Outpoint) error {
	return errors.WithStack(RuleError{
		message: "ErrMissingTxOut",
		inner:   ErrMissingTxOut{missingOutpoints},
	})
}

// ErrInvalidTransactionInBlock attributes a rule violation to a
// specific transaction by its index within the block under acceptance.
type ErrInvalidTransactionInBlock struct {
	Index int
	Err   error
}

func (e ErrInvalidTransactionInBlock) Error() string {
	return fmt.Sprintf("transaction %d: %s", e.Index, e.Err)
}

// Unwrap satisfies the errors.Unwrap interface
func (e ErrInvalidTransactionInBlock) Unwrap() error {
	return e.Err
}

// NewErrInvalidTransactionInBlock creates a new
// ErrInvalidTransactionInBlock error wrapped in a RuleError.
func NewErrInvalidTransactionInBlock(index int, inner error) error {
	return errors.WithStack(RuleError{
		message: "ErrInvalidTransactionInBlock",
		inner:   ErrInvalidTransactionInBlock{Index: index, Err: inner},
	})
}

// TransactionIndex extracts the index of the offending transaction from
// err. It returns false when err does not attribute the violation to a
// specific transaction.
func TransactionIndex(err error) (int, bool) {
	var txErr ErrInvalidTransactionInBlock
	if errors.As(err, &txErr) {
		return txErr.Index, true
	}
	return 0, false
}

// ErrBadCoinbaseValue indicates a coinbase transaction claims more
// value than the maximum subsidy plus fees allow at its height.
type ErrBadCoinbaseValue struct {
	ExpectedMax uint64
	Actual      uint64
}

func (e ErrBadCoinbaseValue) Error() string {
	return fmt.Sprintf("coinbase claims %d which exceeds the allowed maximum of %d",
		e.Actual, e.ExpectedMax)
}

// NewErrBadCoinbaseValue creates a new ErrBadCoinbaseValue error
// wrapped in a RuleError.
func NewErrBadCoinbaseValue(expectedMax, actual uint64) error {
	return errors.WithStack(RuleError{
		message: "ErrBadCoinbaseValue",
		inner:   ErrBadCoinbaseValue{ExpectedMax: expectedMax, Actual: actual},
	})
}
