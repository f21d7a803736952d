package chainstore

import (
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/util/difficulty"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// blockNode is an in-memory index entry for one stored block.
type blockNode struct {
	hash    chainhash.Hash
	parent  *blockNode
	number  uint64
	workSum *big.Int
	block   *externalapi.IndexedBlock
}

// txLocation locates a canonical transaction within the best chain.
type txLocation struct {
	blockNumber uint64
	txIndex     int
	coinbase    bool
}

// ChainStore holds the block index and canonical chain bookkeeping,
// with block bodies persisted to leveldb. It implements
// model.ChainStore.
//
// The lock discipline follows the rest of the pipeline's concurrency
// model: verification calls only read, and reads of any single method
// are consistent; the store must not be mutated while a verification
// call holding one of its views is in flight.
type ChainStore struct {
	mtx sync.RWMutex
	db  *leveldb.DB

	nodes   map[chainhash.Hash]*blockNode
	canon   []*blockNode
	txIndex map[chainhash.Hash]txLocation
}

// Open opens (creating if needed) a chain store persisted at the given
// path.
func Open(path string) (*ChainStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open chain store at %s", path)
	}
	return load(db)
}

// OpenInMemory opens a chain store backed by in-memory storage. Used
// by tests and throwaway chains.
func OpenInMemory() (*ChainStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory chain store")
	}
	return load(db)
}

// Close releases the underlying database.
func (s *ChainStore) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return errors.WithStack(s.db.Close())
}

// Insert stores a block body without making it canonical. The block's
// parent must already be stored, except for the very first block,
// which becomes the prospective genesis at number 0.
func (s *ChainStore) Insert(block *externalapi.IndexedBlock) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	err := s.insertNoLock(block)
	if err != nil {
		return err
	}
	return s.dbPutBlock(block)
}

func (s *ChainStore) insertNoLock(block *externalapi.IndexedBlock) error {
	hash := block.Hash()
	if _, ok := s.nodes[hash]; ok {
		return errors.Wrapf(ErrDuplicateBlock, "block %s", hash)
	}

	node := &blockNode{hash: hash, block: block}
	if len(s.nodes) == 0 {
		node.number = 0
		node.workSum = difficulty.CalcWork(block.Header.Header.Bits)
	} else {
		parent, ok := s.nodes[block.Header.Header.ParentHash]
		if !ok {
			return errors.Wrapf(ErrUnknownParent, "parent %s of block %s",
				block.Header.Header.ParentHash, hash)
		}
		node.parent = parent
		node.number = parent.number + 1
		node.workSum = new(big.Int).Add(parent.workSum,
			difficulty.CalcWork(block.Header.Header.Bits))
	}

	s.nodes[hash] = node
	log.Debugf("Stored block %s at number %d", hash, node.number)
	return nil
}

// Canonize extends the best chain with an already-stored block. The
// block must directly extend the current tip.
func (s *ChainStore) Canonize(hash chainhash.Hash) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	err := s.canonizeNoLock(hash)
	if err != nil {
		return err
	}
	return s.dbPutCanonical(uint64(len(s.canon)-1), hash)
}

func (s *ChainStore) canonizeNoLock(hash chainhash.Hash) error {
	node, ok := s.nodes[hash]
	if !ok {
		return errors.Wrapf(ErrNotFound, "block %s", hash)
	}
	if len(s.canon) == 0 {
		if node.number != 0 {
			return errors.Wrapf(ErrCannotCanonize, "block %s is not a genesis block", hash)
		}
	} else if node.parent != s.canon[len(s.canon)-1] {
		return errors.Wrapf(ErrCannotCanonize, "block %s does not extend tip %s",
			hash, s.canon[len(s.canon)-1].hash)
	}

	s.canon = append(s.canon, node)
	for i, tx := range node.block.Transactions {
		s.txIndex[tx.ID] = txLocation{
			blockNumber: node.number,
			txIndex:     i,
			coinbase:    i == 0,
		}
	}
	log.Debugf("Canonized block %s at number %d", hash, node.number)
	return nil
}

// BestBlock returns the current best chain tip.
func (s *ChainStore) BestBlock() model.BestBlock {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if len(s.canon) == 0 {
		return model.BestBlock{}
	}
	tip := s.canon[len(s.canon)-1]
	return model.BestBlock{Hash: tip.hash, Number: tip.number}
}

// BlockHash returns the canonical block hash at the given number.
func (s *ChainStore) BlockHash(number uint64) (chainhash.Hash, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if number >= uint64(len(s.canon)) {
		return chainhash.Hash{}, false
	}
	return s.canon[number].hash, true
}

// StoreView returns the store's direct, read-only view of the best
// chain.
func (s *ChainStore) StoreView() model.StoreView {
	return storeView{s: s}
}

func (s *ChainStore) tip() *blockNode {
	if len(s.canon) == 0 {
		return nil
	}
	return s.canon[len(s.canon)-1]
}

func (s *ChainStore) isCanonical(node *blockNode) bool {
	return node.number < uint64(len(s.canon)) && s.canon[node.number] == node
}

var _ model.ChainStore = (*ChainStore)(nil)
