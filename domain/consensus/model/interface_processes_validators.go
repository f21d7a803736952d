package model

import (
	"time"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// HeaderChecker runs context-free structural checks on a header
// against a single captured current-time instant. It never consults
// chain state.
type HeaderChecker interface {
	CheckHeader(header *externalapi.IndexedBlockHeader, now time.Time) error
}

// BlockChecker runs context-free structural checks on a whole block,
// including its header and the structural rules of each of its
// transactions.
type BlockChecker interface {
	HeaderChecker
	CheckBlock(block *externalapi.IndexedBlock, now time.Time, limits ConsensusLimits) error
}

// TransactionChecker runs context-free structural checks on a single
// transaction: rules that do not require knowing whether referenced
// outputs exist.
type TransactionChecker interface {
	CheckTransaction(tx *externalapi.IndexedTransaction, limits ConsensusLimits) error

	// CheckMempoolTransaction runs the structural rules that apply to
	// transactions bound for the mempool, which additionally reject
	// coinbase transactions.
	CheckMempoolTransaction(tx *externalapi.IndexedTransaction, limits ConsensusLimits) error
}
