package externalapi

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockHeader represents a block header.
type BlockHeader struct {
	Version    int32
	ParentHash chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  int64
	Bits       uint32
	Nonce      uint32
}

// IndexedBlockHeader couples a block header with its content hash so
// that the hash is computed exactly once per verification call.
type IndexedBlockHeader struct {
	Hash   chainhash.Hash
	Header *BlockHeader
}
