package testutils

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/chainstore"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// NewTestChain opens an in-memory store holding a canonical chain of
// the given length, genesis included. The store is closed when the
// test ends.
func NewTestChain(t *testing.T, params *chainconfig.Params, length uint64) (
	*chainstore.ChainStore, []*externalapi.IndexedBlock) {

	store, err := chainstore.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %+v", err)
	}
	t.Cleanup(func() { store.Close() })

	blocks := make([]*externalapi.IndexedBlock, 0, length)
	parent := chainhash.Hash{}
	for number := uint64(0); number < length; number++ {
		block := NewBlockBuilder(params, parent, number).Build()
		AddCanonicalBlock(t, store, block)
		blocks = append(blocks, block)
		parent = block.Hash()
	}
	return store, blocks
}

// AddCanonicalBlock stores the block and extends the best chain with
// it, failing the test on any store error.
func AddCanonicalBlock(t *testing.T, store *chainstore.ChainStore,
	block *externalapi.IndexedBlock) {

	t.Helper()
	err := store.Insert(block)
	if err != nil {
		t.Fatalf("Insert(%s): %+v", block.Hash(), err)
	}
	err = store.Canonize(block.Hash())
	if err != nil {
		t.Fatalf("Canonize(%s): %+v", block.Hash(), err)
	}
}
