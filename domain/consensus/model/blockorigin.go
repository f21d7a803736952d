package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockOrigin classifies a block header against the current chain
// shape. Exactly one of the four variants applies, and classification
// is a pure function of the store state and the header's parent
// linkage: it is computed fresh for every block and never cached
// across verification calls.
type BlockOrigin interface {
	isBlockOrigin()
}

// KnownBlock indicates the header is already fully stored. It must
// never be observed at the verification entry point; reaching it there
// is a programming error, not a user-facing rejection.
type KnownBlock struct{}

// CanonChain indicates the block directly extends the current best
// chain, at the given block number.
type CanonChain struct {
	BlockNumber uint64
}

// SideChain indicates the block extends a branch that is not (yet)
// best.
type SideChain struct {
	Origin *ForkOrigin
}

// SideChainBecomingCanonChain indicates the block extends a branch
// whose cumulative work now exceeds the current best chain, i.e. the
// block triggers a reorganization. Acceptance treats it exactly like
// SideChain; the reorg commitment itself is the store's job and runs
// only after acceptance succeeds.
type SideChainBecomingCanonChain struct {
	Origin *ForkOrigin
}

func (KnownBlock) isBlockOrigin()                  {}
func (CanonChain) isBlockOrigin()                  {}
func (SideChain) isBlockOrigin()                   {}
func (SideChainBecomingCanonChain) isBlockOrigin() {}

// ForkOrigin carries enough information to materialize a read view of
// a side branch's state: the canonical block number of the branch
// point, the branch's block hashes above it (oldest first), and the
// number the new block would occupy.
type ForkOrigin struct {
	ForkPoint   uint64
	SideHashes  []chainhash.Hash
	BlockNumber uint64
}
