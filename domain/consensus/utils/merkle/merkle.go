package merkle

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// CalcMerkleRoot computes the merkle root over the ids of the given
// transactions. When a level has an odd number of nodes the last one is
// paired with itself.
func CalcMerkleRoot(transactions []*externalapi.IndexedTransaction) chainhash.Hash {
	level := make([]chainhash.Hash, len(transactions))
	for i, tx := range transactions {
		level[i] = tx.ID
	}
	if len(level) == 0 {
		return chainhash.Hash{}
	}

	for len(level) > 1 {
		nextLevel := make([]chainhash.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			nextLevel = append(nextLevel, hashMerkleBranches(left, right))
		}
		level = nextLevel
	}
	return level[0]
}

func hashMerkleBranches(left, right chainhash.Hash) chainhash.Hash {
	var concat [2 * chainhash.HashSize]byte
	copy(concat[:chainhash.HashSize], left[:])
	copy(concat[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(concat[:])
}
