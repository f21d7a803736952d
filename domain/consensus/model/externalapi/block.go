package externalapi

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Block represents a block: a header plus an ordered list of
// transactions, the first of which must be the coinbase.
type Block struct {
	Header       *BlockHeader
	Transactions []*Transaction
}

// IndexedBlock couples a block with the content hashes of its header
// and transactions. Verification borrows an IndexedBlock for the
// duration of a single call and never mutates it.
type IndexedBlock struct {
	Header       *IndexedBlockHeader
	Transactions []*IndexedTransaction
}

// Hash returns the block's content hash.
func (block *IndexedBlock) Hash() chainhash.Hash {
	return block.Header.Hash
}
