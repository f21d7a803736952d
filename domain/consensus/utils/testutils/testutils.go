// Package testutils builds blocks and transactions for consensus
// tests. Headers are built for networks that skip proof of work, so
// nothing here solves blocks.
package testutils

import (
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/consensushashing"
	"github.com/emberchain/emberd/domain/consensus/utils/constants"
	"github.com/emberchain/emberd/domain/consensus/utils/merkle"
)

// BaseTimestamp anchors all generated headers so tests are
// deterministic regardless of the wall clock.
var BaseTimestamp = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC).Unix()

// BlockBuilder assembles a block over a parent hash. The zero tag is
// reserved for the genesis block; callers building a chain should tag
// each block with its intended number so coinbase transactions, and
// with them block hashes, stay unique.
type BlockBuilder struct {
	params        *chainconfig.Params
	parent        chainhash.Hash
	tag           uint64
	timestamp     int64
	coinbaseValue uint64
	transactions  []*externalapi.Transaction
}

func NewBlockBuilder(params *chainconfig.Params, parent chainhash.Hash, tag uint64) *BlockBuilder {
	return &BlockBuilder{
		params:        params,
		parent:        parent,
		tag:           tag,
		timestamp:     BaseTimestamp + int64(tag)*10,
		coinbaseValue: params.BaseSubsidy,
	}
}

func (b *BlockBuilder) SetTimestamp(timestamp int64) *BlockBuilder {
	b.timestamp = timestamp
	return b
}

func (b *BlockBuilder) SetCoinbaseValue(value uint64) *BlockBuilder {
	b.coinbaseValue = value
	return b
}

func (b *BlockBuilder) AddTransaction(tx *externalapi.Transaction) *BlockBuilder {
	b.transactions = append(b.transactions, tx)
	return b
}

func (b *BlockBuilder) Build() *externalapi.IndexedBlock {
	coinbase := CoinbaseTransaction(b.tag, b.coinbaseValue)
	transactions := append([]*externalapi.Transaction{coinbase}, b.transactions...)

	indexedTransactions := make([]*externalapi.IndexedTransaction, len(transactions))
	for i, tx := range transactions {
		indexedTransactions[i] = consensushashing.NewIndexedTransaction(tx)
	}

	header := &externalapi.BlockHeader{
		Version:    1,
		ParentHash: b.parent,
		MerkleRoot: merkle.CalcMerkleRoot(indexedTransactions),
		Timestamp:  b.timestamp,
		Bits:       b.params.PowLimitBits,
		Nonce:      0,
	}

	return &externalapi.IndexedBlock{
		Header:       consensushashing.NewIndexedHeader(header),
		Transactions: indexedTransactions,
	}
}

// CoinbaseTransaction returns a coinbase whose signature script embeds
// the tag, keeping transaction ids across generated blocks distinct.
func CoinbaseTransaction(tag uint64, value uint64) *externalapi.Transaction {
	script := make([]byte, 8)
	binary.LittleEndian.PutUint64(script, tag)
	return &externalapi.Transaction{
		Version: 1,
		Inputs: []*externalapi.TransactionInput{{
			PreviousOutpoint: externalapi.Outpoint{
				TransactionID: chainhash.Hash{},
				Index:         externalapi.CoinbaseOutpointIndex,
			},
			SignatureScript: script,
			Sequence:        constants.MaxTxInSequenceNum,
		}},
		Outputs: []*externalapi.TransactionOutput{{
			Value:        value,
			ScriptPubKey: []byte{},
		}},
	}
}

// TransactionBuilder assembles a spending transaction. Inputs default
// to the maximal sequence number so lock time rules stay out of the
// way unless a test opts in.
type TransactionBuilder struct {
	tx *externalapi.Transaction
}

func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: &externalapi.Transaction{Version: 1},
	}
}

func (b *TransactionBuilder) AddInput(txID chainhash.Hash, index uint32) *TransactionBuilder {
	return b.AddInputWithSequence(txID, index, constants.MaxTxInSequenceNum)
}

func (b *TransactionBuilder) AddInputWithSequence(txID chainhash.Hash, index uint32,
	sequence uint32) *TransactionBuilder {

	b.tx.Inputs = append(b.tx.Inputs, &externalapi.TransactionInput{
		PreviousOutpoint: externalapi.Outpoint{TransactionID: txID, Index: index},
		SignatureScript:  []byte{},
		Sequence:         sequence,
	})
	return b
}

func (b *TransactionBuilder) AddSignatureScript(script []byte) *TransactionBuilder {
	b.tx.Inputs[len(b.tx.Inputs)-1].SignatureScript = script
	return b
}

func (b *TransactionBuilder) AddOutput(value uint64, scriptPubKey []byte) *TransactionBuilder {
	b.tx.Outputs = append(b.tx.Outputs, &externalapi.TransactionOutput{
		Value:        value,
		ScriptPubKey: scriptPubKey,
	})
	return b
}

func (b *TransactionBuilder) SetLockTime(lockTime uint32) *TransactionBuilder {
	b.tx.LockTime = lockTime
	return b
}

func (b *TransactionBuilder) Build() *externalapi.Transaction {
	return b.tx
}

func (b *TransactionBuilder) BuildIndexed() *externalapi.IndexedTransaction {
	return consensushashing.NewIndexedTransaction(b.tx)
}
