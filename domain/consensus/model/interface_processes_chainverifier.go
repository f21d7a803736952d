package model

import (
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// ChainVerifier is the verification orchestrator: the externally
// observable surface of the acceptance pipeline.
type ChainVerifier interface {
	// VerifyBlock runs the full two-phase verification of a candidate
	// block: structural pre-verification followed by contextual
	// acceptance against the store view selected by the block's
	// origin. It never mutates canonical state.
	VerifyBlock(block *externalapi.IndexedBlock, limits ConsensusLimits) error

	// VerifyHeader runs structural pre-verification of a header only.
	// This is partial verification: it must never be used as a
	// substitute for VerifyBlock and exists for header-first
	// synchronization before block bodies are available.
	VerifyHeader(header *externalapi.IndexedBlockHeader) error

	// VerifyMempoolTransaction verifies a transaction bound for the
	// mempool against the given prevout provider and the confirmation
	// height/time the transaction would be included at. On success the
	// transaction is eligible for the mempool; admission bookkeeping
	// is the caller's responsibility.
	VerifyMempoolTransaction(prevOuts OutputProvider, blockNumber uint64,
		blockTime int64, tx *externalapi.Transaction, limits ConsensusLimits) error
}
