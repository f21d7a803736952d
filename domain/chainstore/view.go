package chainstore

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// storeView is the store's direct read view of the best chain.
type storeView struct {
	s *ChainStore
}

func (v storeView) TransactionOutput(outpoint externalapi.Outpoint) (*externalapi.TransactionOutput, bool) {
	v.s.mtx.RLock()
	defer v.s.mtx.RUnlock()
	return v.s.canonicalOutput(outpoint, uint64(len(v.s.canon)))
}

func (v storeView) TransactionMeta(txID chainhash.Hash) (*model.TransactionMeta, bool) {
	v.s.mtx.RLock()
	defer v.s.mtx.RUnlock()
	return v.s.canonicalMeta(txID, uint64(len(v.s.canon)))
}

func (v storeView) BlockHeaderByNumber(number uint64) (*externalapi.IndexedBlockHeader, bool) {
	v.s.mtx.RLock()
	defer v.s.mtx.RUnlock()
	if number >= uint64(len(v.s.canon)) {
		return nil, false
	}
	return v.s.canon[number].block.Header, true
}

// canonicalOutput resolves an output of a canonical transaction
// confirmed strictly below limitNumber. Must be called with the store
// lock held.
func (s *ChainStore) canonicalOutput(outpoint externalapi.Outpoint, limitNumber uint64) (*externalapi.TransactionOutput, bool) {
	loc, ok := s.txIndex[outpoint.TransactionID]
	if !ok || loc.blockNumber >= limitNumber {
		return nil, false
	}
	tx := s.canon[loc.blockNumber].block.Transactions[loc.txIndex].Tx
	if outpoint.Index >= uint32(len(tx.Outputs)) {
		return nil, false
	}
	return tx.Outputs[outpoint.Index], true
}

// canonicalMeta resolves the chain position of a canonical transaction
// confirmed strictly below limitNumber. Must be called with the store
// lock held.
func (s *ChainStore) canonicalMeta(txID chainhash.Hash, limitNumber uint64) (*model.TransactionMeta, bool) {
	loc, ok := s.txIndex[txID]
	if !ok || loc.blockNumber >= limitNumber {
		return nil, false
	}
	return &model.TransactionMeta{BlockNumber: loc.blockNumber, IsCoinbase: loc.coinbase}, true
}

// forkView presents a side branch's ancestry as if it were canonical:
// canonical blocks up to and including the fork point, then the
// branch's own blocks. It never mutates canonical state and stays
// valid for the duration of one verification call.
type forkView struct {
	s         *ChainStore
	forkPoint uint64
	side      []*blockNode
	sideTxs   map[chainhash.Hash]sideTxLocation
}

type sideTxLocation struct {
	blockNumber uint64
	txIndex     int
	coinbase    bool
	tx          *externalapi.IndexedTransaction
}

// Fork materializes a read view scoped to the side branch described by
// origin.
func (s *ChainStore) Fork(origin *model.ForkOrigin) (model.StoreView, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	view := &forkView{
		s:         s,
		forkPoint: origin.ForkPoint,
		sideTxs:   make(map[chainhash.Hash]sideTxLocation),
	}
	for i, hash := range origin.SideHashes {
		node, ok := s.nodes[hash]
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "side chain block %s", hash)
		}
		view.side = append(view.side, node)
		for txIndex, tx := range node.block.Transactions {
			view.sideTxs[tx.ID] = sideTxLocation{
				blockNumber: origin.ForkPoint + 1 + uint64(i),
				txIndex:     txIndex,
				coinbase:    txIndex == 0,
				tx:          tx,
			}
		}
	}
	return view, nil
}

func (v *forkView) TransactionOutput(outpoint externalapi.Outpoint) (*externalapi.TransactionOutput, bool) {
	if loc, ok := v.sideTxs[outpoint.TransactionID]; ok {
		if outpoint.Index >= uint32(len(loc.tx.Tx.Outputs)) {
			return nil, false
		}
		return loc.tx.Tx.Outputs[outpoint.Index], true
	}
	v.s.mtx.RLock()
	defer v.s.mtx.RUnlock()
	return v.s.canonicalOutput(outpoint, v.forkPoint+1)
}

func (v *forkView) TransactionMeta(txID chainhash.Hash) (*model.TransactionMeta, bool) {
	if loc, ok := v.sideTxs[txID]; ok {
		return &model.TransactionMeta{BlockNumber: loc.blockNumber, IsCoinbase: loc.coinbase}, true
	}
	v.s.mtx.RLock()
	defer v.s.mtx.RUnlock()
	return v.s.canonicalMeta(txID, v.forkPoint+1)
}

func (v *forkView) BlockHeaderByNumber(number uint64) (*externalapi.IndexedBlockHeader, bool) {
	if number > v.forkPoint {
		sideIndex := number - v.forkPoint - 1
		if sideIndex >= uint64(len(v.side)) {
			return nil, false
		}
		return v.side[sideIndex].block.Header, true
	}
	v.s.mtx.RLock()
	defer v.s.mtx.RUnlock()
	if number >= uint64(len(v.s.canon)) {
		return nil, false
	}
	return v.s.canon[number].block.Header, true
}
