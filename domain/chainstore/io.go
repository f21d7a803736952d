package chainstore

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/consensushashing"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbutil "github.com/syndtr/goleveldb/leveldb/util"
)

var (
	blockKeyPrefix     = []byte("block:")
	canonicalKeyPrefix = []byte("canonical:")
)

func blockKey(hash chainhash.Hash) []byte {
	return append(blockKeyPrefix[:len(blockKeyPrefix):len(blockKeyPrefix)], hash[:]...)
}

func canonicalKey(number uint64) []byte {
	key := make([]byte, len(canonicalKeyPrefix)+8)
	copy(key, canonicalKeyPrefix)
	binary.BigEndian.PutUint64(key[len(canonicalKeyPrefix):], number)
	return key
}

func (s *ChainStore) dbPutBlock(block *externalapi.IndexedBlock) error {
	raw, err := serialization.SerializeBlockBytes(rawBlock(block))
	if err != nil {
		return err
	}
	hash := block.Hash()
	return errors.WithStack(s.db.Put(blockKey(hash), raw, nil))
}

func (s *ChainStore) dbPutCanonical(number uint64, hash chainhash.Hash) error {
	return errors.WithStack(s.db.Put(canonicalKey(number), hash[:], nil))
}

func rawBlock(block *externalapi.IndexedBlock) *externalapi.Block {
	transactions := make([]*externalapi.Transaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactions[i] = tx.Tx
	}
	return &externalapi.Block{Header: block.Header.Header, Transactions: transactions}
}

// load rebuilds the in-memory index from the database: all block
// bodies first, then the canonical chain in number order.
func load(db *leveldb.DB) (*ChainStore, error) {
	s := &ChainStore{
		db:      db,
		nodes:   make(map[chainhash.Hash]*blockNode),
		txIndex: make(map[chainhash.Hash]txLocation),
	}

	blocks := make(map[chainhash.Hash]*externalapi.IndexedBlock)
	iter := db.NewIterator(ldbutil.BytesPrefix(blockKeyPrefix), nil)
	for iter.Next() {
		block, err := serialization.DeserializeBlock(bytes.NewReader(iter.Value()))
		if err != nil {
			iter.Release()
			return nil, errors.Wrap(ErrCorruptedStore, err.Error())
		}
		indexed := consensushashing.NewIndexedBlock(block)
		blocks[indexed.Hash()] = indexed
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}

	// Canonical blocks first, in order, so that parents always resolve.
	canonical := make([]chainhash.Hash, 0)
	iter = db.NewIterator(ldbutil.BytesPrefix(canonicalKeyPrefix), nil)
	for iter.Next() {
		var hash chainhash.Hash
		if len(iter.Value()) != chainhash.HashSize {
			iter.Release()
			return nil, errors.Wrap(ErrCorruptedStore, "malformed canonical entry")
		}
		copy(hash[:], iter.Value())
		canonical = append(canonical, hash)
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, hash := range canonical {
		block, ok := blocks[hash]
		if !ok {
			return nil, errors.Wrapf(ErrCorruptedStore, "canonical block %s has no stored body", hash)
		}
		err := s.insertNoLock(block)
		if err != nil {
			return nil, err
		}
		err = s.canonizeNoLock(hash)
		if err != nil {
			return nil, err
		}
		delete(blocks, hash)
	}

	// Remaining blocks are side-branch bodies. Insert them in passes
	// since their order in the database is arbitrary.
	for len(blocks) > 0 {
		progressed := false
		for hash, block := range blocks {
			if _, ok := s.nodes[block.Header.Header.ParentHash]; !ok {
				continue
			}
			err := s.insertNoLock(block)
			if err != nil {
				return nil, err
			}
			delete(blocks, hash)
			progressed = true
		}
		if !progressed {
			return nil, errors.Wrap(ErrCorruptedStore, "stored blocks with unresolvable ancestry")
		}
	}

	log.Infof("Loaded chain store with %d blocks, best chain height %d",
		len(s.nodes), int64(len(s.canon))-1)
	return s, nil
}
