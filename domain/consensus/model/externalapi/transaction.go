package externalapi

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Transaction represents a transaction.
type Transaction struct {
	Version  int32
	Inputs   []*TransactionInput
	Outputs  []*TransactionOutput
	LockTime uint32
}

// TransactionInput represents a transaction input.
type TransactionInput struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint32
}

// Outpoint references an output of a previous transaction by the
// transaction's id and the output's index within it.
type Outpoint struct {
	TransactionID chainhash.Hash
	Index         uint32
}

// String stringifies an outpoint.
func (op Outpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// TransactionOutput represents a transaction output. The script is
// opaque to this module; execution belongs to the script interpreter.
type TransactionOutput struct {
	Value        uint64
	ScriptPubKey []byte
}

// CoinbaseOutpointIndex is the output index a coinbase input carries in
// its previous outpoint.
const CoinbaseOutpointIndex = math.MaxUint32

// IsCoinbase determines whether the transaction is a coinbase: a single
// input referencing the zero transaction id at the maximal index.
func (tx *Transaction) IsCoinbase() bool {
	if len(tx.Inputs) != 1 {
		return false
	}
	prevOut := tx.Inputs[0].PreviousOutpoint
	return prevOut.Index == CoinbaseOutpointIndex && prevOut.TransactionID == (chainhash.Hash{})
}

// IndexedTransaction couples a transaction with its content id so that
// the id is computed exactly once per verification call.
type IndexedTransaction struct {
	ID chainhash.Hash
	Tx *Transaction
}
