package serialization

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/stretchr/testify/require"
)

func sampleBlock() *externalapi.Block {
	return &externalapi.Block{
		Header: &externalapi.BlockHeader{
			Version:    1,
			ParentHash: chainhash.Hash{0x01, 0x02},
			MerkleRoot: chainhash.Hash{0x03, 0x04},
			Timestamp:  1622505600,
			Bits:       0x207fffff,
			Nonce:      42,
		},
		Transactions: []*externalapi.Transaction{
			{
				Version: 1,
				Inputs: []*externalapi.TransactionInput{{
					PreviousOutpoint: externalapi.Outpoint{
						TransactionID: chainhash.Hash{},
						Index:         externalapi.CoinbaseOutpointIndex,
					},
					SignatureScript: []byte{0x51},
					Sequence:        0xffffffff,
				}},
				Outputs: []*externalapi.TransactionOutput{{
					Value:        5_000_000_000,
					ScriptPubKey: []byte{0x51, 0x52},
				}},
			},
			{
				Version: 1,
				Inputs: []*externalapi.TransactionInput{{
					PreviousOutpoint: externalapi.Outpoint{
						TransactionID: chainhash.Hash{0x05},
						Index:         1,
					},
					SignatureScript: []byte{},
					Sequence:        7,
				}},
				LockTime: 500_000_001,
			},
		},
	}
}

func TestBlockRoundTrip(t *testing.T) {
	block := sampleBlock()

	raw, err := SerializeBlockBytes(block)
	require.NoError(t, err)

	decoded, err := DeserializeBlock(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, block, decoded, "decoded block mismatch: %s", spew.Sdump(decoded))
}

func TestSerializedSizes(t *testing.T) {
	block := sampleBlock()

	raw, err := SerializeBlockBytes(block)
	require.NoError(t, err)

	total := blockHeaderSerializedSize + 8
	for _, tx := range block.Transactions {
		var buf bytes.Buffer
		require.NoError(t, SerializeTransaction(&buf, tx))
		require.Equal(t, buf.Len(), TransactionSerializedSize(tx))
		total += buf.Len()
	}
	require.Equal(t, len(raw), total)
}

func TestHeaderRoundTrip(t *testing.T) {
	header := sampleBlock().Header

	var buf bytes.Buffer
	require.NoError(t, SerializeHeader(&buf, header))
	require.Equal(t, blockHeaderSerializedSize, buf.Len())

	decoded, err := DeserializeHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, header, decoded)
}

func TestDeserializeTruncated(t *testing.T) {
	block := sampleBlock()
	raw, err := SerializeBlockBytes(block)
	require.NoError(t, err)

	_, err = DeserializeBlock(bytes.NewReader(raw[:len(raw)-3]))
	require.Error(t, err)
}

func TestReadElementBoundsByteSlices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteElement(&buf, uint64(maxSerializedByteSliceLength+1)))

	var dst []byte
	err := ReadElement(&buf, &dst)
	require.Error(t, err)
}
