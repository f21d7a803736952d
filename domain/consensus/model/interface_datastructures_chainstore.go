package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// BestBlock identifies the tip of the current best chain.
type BestBlock struct {
	Hash   chainhash.Hash
	Number uint64
}

// StoreView is a store-shaped, read-only view of chain state used by
// contextual acceptance. The store's direct view presents the current
// best chain; a fork view presents a side branch's ancestry as if it
// were canonical, without mutating canonical state.
type StoreView interface {
	OutputProvider
	TransactionMetaProvider
	BlockHeaderProvider
}

// ChainStore is the persistent chain store capability consumed by
// verification. Canonical mutation (insertion, reorg commitment,
// branch materialization) is entirely the store's responsibility;
// verification only reads through it. Implementations must keep the
// view returned for a given origin consistent for the duration of one
// verification call.
type ChainStore interface {
	// BestBlock returns the current best chain tip.
	BestBlock() BestBlock

	// BlockHash returns the canonical block hash at the given number.
	BlockHash(number uint64) (chainhash.Hash, bool)

	// BlockOrigin classifies the header against the current chain
	// shape. It returns a store-contract error when the header's
	// parent is unknown.
	BlockOrigin(header *externalapi.IndexedBlockHeader) (BlockOrigin, error)

	// Fork materializes a read view scoped to the side branch
	// described by origin.
	Fork(origin *ForkOrigin) (StoreView, error)

	// StoreView returns the store's direct view of the best chain.
	StoreView() StoreView
}
