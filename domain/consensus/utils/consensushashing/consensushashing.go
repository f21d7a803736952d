package consensushashing

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// HeaderHash returns the given header's hash: the double SHA256 of its
// canonical serialization.
func HeaderHash(header *externalapi.BlockHeader) chainhash.Hash {
	var buf bytes.Buffer
	err := serialization.SerializeHeader(&buf, header)
	if err != nil {
		// Serializing into a bytes.Buffer cannot fail for a
		// well-formed header, so an error here is a bug.
		panic(errors.Wrap(err, "failed serializing header for hashing"))
	}
	return chainhash.DoubleHashH(buf.Bytes())
}

// TransactionID returns the given transaction's id: the double SHA256
// of its canonical serialization.
func TransactionID(tx *externalapi.Transaction) chainhash.Hash {
	var buf bytes.Buffer
	err := serialization.SerializeTransaction(&buf, tx)
	if err != nil {
		panic(errors.Wrap(err, "failed serializing transaction for hashing"))
	}
	return chainhash.DoubleHashH(buf.Bytes())
}

// NewIndexedHeader wraps header together with its computed hash.
func NewIndexedHeader(header *externalapi.BlockHeader) *externalapi.IndexedBlockHeader {
	return &externalapi.IndexedBlockHeader{
		Hash:   HeaderHash(header),
		Header: header,
	}
}

// NewIndexedTransaction wraps tx together with its computed id.
func NewIndexedTransaction(tx *externalapi.Transaction) *externalapi.IndexedTransaction {
	return &externalapi.IndexedTransaction{
		ID: TransactionID(tx),
		Tx: tx,
	}
}

// NewIndexedBlock wraps block together with the computed hashes of its
// header and all of its transactions.
func NewIndexedBlock(block *externalapi.Block) *externalapi.IndexedBlock {
	transactions := make([]*externalapi.IndexedTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactions[i] = NewIndexedTransaction(tx)
	}
	return &externalapi.IndexedBlock{
		Header:       NewIndexedHeader(block.Header),
		Transactions: transactions,
	}
}
