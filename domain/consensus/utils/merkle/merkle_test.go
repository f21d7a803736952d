package merkle

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

func indexedWithID(id chainhash.Hash) *externalapi.IndexedTransaction {
	return &externalapi.IndexedTransaction{ID: id, Tx: &externalapi.Transaction{}}
}

func TestCalcMerkleRootSingle(t *testing.T) {
	// A single transaction is its own merkle root.
	id := chainhash.Hash{0x01, 0x02}
	root := CalcMerkleRoot([]*externalapi.IndexedTransaction{indexedWithID(id)})
	if root != id {
		t.Fatalf("CalcMerkleRoot: got %s, want %s", root, id)
	}
}

func TestCalcMerkleRootPair(t *testing.T) {
	left := chainhash.Hash{0x01}
	right := chainhash.Hash{0x02}
	root := CalcMerkleRoot([]*externalapi.IndexedTransaction{
		indexedWithID(left), indexedWithID(right),
	})

	var concat [64]byte
	copy(concat[:32], left[:])
	copy(concat[32:], right[:])
	want := chainhash.DoubleHashH(concat[:])
	if root != want {
		t.Fatalf("CalcMerkleRoot: got %s, want %s", root, want)
	}
}

func TestCalcMerkleRootOddCountPairsWithSelf(t *testing.T) {
	a := chainhash.Hash{0x01}
	b := chainhash.Hash{0x02}
	c := chainhash.Hash{0x03}
	root := CalcMerkleRoot([]*externalapi.IndexedTransaction{
		indexedWithID(a), indexedWithID(b), indexedWithID(c),
	})

	// The trailing node at each level is hashed with itself.
	withDuplicate := CalcMerkleRoot([]*externalapi.IndexedTransaction{
		indexedWithID(a), indexedWithID(b), indexedWithID(c), indexedWithID(c),
	})
	if root != withDuplicate {
		t.Fatalf("odd count root %s differs from self-paired root %s", root, withDuplicate)
	}
}

func TestCalcMerkleRootOrderMatters(t *testing.T) {
	a := indexedWithID(chainhash.Hash{0x01})
	b := indexedWithID(chainhash.Hash{0x02})

	forward := CalcMerkleRoot([]*externalapi.IndexedTransaction{a, b})
	reversed := CalcMerkleRoot([]*externalapi.IndexedTransaction{b, a})
	if forward == reversed {
		t.Fatal("merkle root should depend on transaction order")
	}
}
