package model

// ConsensusLimits is the injectable policy of consensus ceilings.
// Implementations must be immutable once constructed and safe to share
// across concurrent verification calls without synchronization. The
// same policy instance is passed down the whole call tree of one
// verification call so that limit decisions within the call are
// self-consistent even if the node's active policy is swapped between
// calls.
type ConsensusLimits interface {
	// MaxBlockSigOps returns the maximum number of signature
	// operations allowed across all transactions of one block.
	MaxBlockSigOps() int

	// MaxBlockSize returns the maximum serialized block size in bytes.
	MaxBlockSize() int

	// MaxTransactionSize returns the maximum serialized transaction
	// size in bytes.
	MaxTransactionSize() int
}
