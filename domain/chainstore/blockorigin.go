package chainstore

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/util/difficulty"
	"github.com/pkg/errors"
)

// BlockOrigin classifies the header against the current chain shape.
// The classification is computed fresh from the index on every call.
func (s *ChainStore) BlockOrigin(header *externalapi.IndexedBlockHeader) (model.BlockOrigin, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if _, ok := s.nodes[header.Hash]; ok {
		return model.KnownBlock{}, nil
	}

	parent, ok := s.nodes[header.Header.ParentHash]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownParent, "parent %s of block %s",
			header.Header.ParentHash, header.Hash)
	}

	blockNumber := parent.number + 1
	tip := s.tip()
	if tip == nil {
		return nil, errors.Wrap(ErrCorruptedStore, "store has blocks but no canonical chain")
	}
	if parent == tip {
		return model.CanonChain{BlockNumber: blockNumber}, nil
	}

	// The parent sits below the tip or on a side branch. Walk up to
	// the closest canonical ancestor to describe the branch.
	var sideHashes []chainhash.Hash
	forkNode := parent
	for !s.isCanonical(forkNode) {
		sideHashes = append([]chainhash.Hash{forkNode.hash}, sideHashes...)
		forkNode = forkNode.parent
		if forkNode == nil {
			return nil, errors.Wrapf(ErrCorruptedStore,
				"side branch of block %s does not join the canonical chain", header.Hash)
		}
	}

	origin := &model.ForkOrigin{
		ForkPoint:   forkNode.number,
		SideHashes:  sideHashes,
		BlockNumber: blockNumber,
	}

	newWork := new(big.Int).Add(parent.workSum, difficulty.CalcWork(header.Header.Bits))
	if newWork.Cmp(tip.workSum) > 0 {
		return model.SideChainBecomingCanonChain{Origin: origin}, nil
	}
	return model.SideChain{Origin: origin}, nil
}
