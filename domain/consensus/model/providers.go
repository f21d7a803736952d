package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// OutputProvider resolves a previously created transaction output by
// reference, or reports its absence.
type OutputProvider interface {
	TransactionOutput(outpoint externalapi.Outpoint) (*externalapi.TransactionOutput, bool)
}

// TransactionMeta describes where a confirmed transaction sits in the
// chain, as needed by maturity checks.
type TransactionMeta struct {
	BlockNumber uint64
	IsCoinbase  bool
}

// TransactionMetaProvider resolves the chain position of a confirmed
// transaction. Transactions not confirmed in the provider's view
// resolve to absence.
type TransactionMetaProvider interface {
	TransactionMeta(txID chainhash.Hash) (*TransactionMeta, bool)
}

// BlockHeaderProvider resolves stored block headers.
type BlockHeaderProvider interface {
	BlockHeaderByNumber(number uint64) (*externalapi.IndexedBlockHeader, bool)
}
