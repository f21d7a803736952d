package serialization

import (
	"bytes"
	"io"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// blockHeaderSerializedSize is the size of a serialized block header:
// version 4 + parent hash 32 + merkle root 32 + timestamp 8 + bits 4 +
// nonce 4.
const blockHeaderSerializedSize = 84

// SerializeHeader writes the canonical representation of header to w.
// This representation is the hashing preimage, so any change to it is a
// consensus change.
func SerializeHeader(w io.Writer, header *externalapi.BlockHeader) error {
	return WriteElements(w, header.Version, header.ParentHash, header.MerkleRoot,
		header.Timestamp, header.Bits, header.Nonce)
}

// DeserializeHeader reads a block header from r.
func DeserializeHeader(r io.Reader) (*externalapi.BlockHeader, error) {
	header := &externalapi.BlockHeader{}
	for _, element := range []interface{}{
		&header.Version, &header.ParentHash, &header.MerkleRoot,
		&header.Timestamp, &header.Bits, &header.Nonce,
	} {
		err := ReadElement(r, element)
		if err != nil {
			return nil, err
		}
	}
	return header, nil
}

// SerializeTransaction writes the canonical representation of tx to w.
func SerializeTransaction(w io.Writer, tx *externalapi.Transaction) error {
	err := WriteElements(w, tx.Version, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err := WriteElements(w, input.PreviousOutpoint.TransactionID,
			input.PreviousOutpoint.Index, input.SignatureScript, input.Sequence)
		if err != nil {
			return err
		}
	}
	err = WriteElement(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err := WriteElements(w, output.Value, output.ScriptPubKey)
		if err != nil {
			return err
		}
	}
	return WriteElement(w, tx.LockTime)
}

// DeserializeTransaction reads a transaction from r.
func DeserializeTransaction(r io.Reader) (*externalapi.Transaction, error) {
	tx := &externalapi.Transaction{}
	var inputCount uint64
	err := ReadElement(r, &tx.Version)
	if err != nil {
		return nil, err
	}
	err = ReadElement(r, &inputCount)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < inputCount; i++ {
		input := &externalapi.TransactionInput{}
		for _, element := range []interface{}{
			&input.PreviousOutpoint.TransactionID, &input.PreviousOutpoint.Index,
			&input.SignatureScript, &input.Sequence,
		} {
			err := ReadElement(r, element)
			if err != nil {
				return nil, err
			}
		}
		tx.Inputs = append(tx.Inputs, input)
	}
	var outputCount uint64
	err = ReadElement(r, &outputCount)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < outputCount; i++ {
		output := &externalapi.TransactionOutput{}
		err := ReadElement(r, &output.Value)
		if err != nil {
			return nil, err
		}
		err = ReadElement(r, &output.ScriptPubKey)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, output)
	}
	err = ReadElement(r, &tx.LockTime)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// SerializeBlock writes the canonical representation of block to w.
func SerializeBlock(w io.Writer, block *externalapi.Block) error {
	err := SerializeHeader(w, block.Header)
	if err != nil {
		return err
	}
	err = WriteElement(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		err := SerializeTransaction(w, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeBlock reads a block from r.
func DeserializeBlock(r io.Reader) (*externalapi.Block, error) {
	header, err := DeserializeHeader(r)
	if err != nil {
		return nil, err
	}
	block := &externalapi.Block{Header: header}
	var txCount uint64
	err = ReadElement(r, &txCount)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < txCount; i++ {
		tx, err := DeserializeTransaction(r)
		if err != nil {
			return nil, err
		}
		block.Transactions = append(block.Transactions, tx)
	}
	return block, nil
}

// SerializeBlockBytes serializes block into a fresh byte slice.
func SerializeBlockBytes(block *externalapi.Block) ([]byte, error) {
	var buf bytes.Buffer
	err := SerializeBlock(&buf, block)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TransactionSerializedSize returns the size in bytes of the canonical
// representation of tx. The consensus limits on transaction and block
// sizes are defined over this representation.
func TransactionSerializedSize(tx *externalapi.Transaction) int {
	// version 4 + input count 8 + output count 8 + lock time 4.
	size := 24
	for _, input := range tx.Inputs {
		// outpoint 36 + script length prefix 8 + sequence 4.
		size += 48 + len(input.SignatureScript)
	}
	for _, output := range tx.Outputs {
		// value 8 + script length prefix 8.
		size += 16 + len(output.ScriptPubKey)
	}
	return size
}

// BlockSerializedSize returns the size in bytes of the canonical
// representation of block.
func BlockSerializedSize(block *externalapi.IndexedBlock) int {
	size := blockHeaderSerializedSize + 8
	for _, tx := range block.Transactions {
		size += TransactionSerializedSize(tx.Tx)
	}
	return size
}
