package chainverifier

import (
	"fmt"

	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/processes/blockvalidator"
	"github.com/emberchain/emberd/domain/consensus/processes/chainacceptor"
	"github.com/emberchain/emberd/domain/consensus/processes/transactionvalidator"
	"github.com/emberchain/emberd/domain/consensus/utils/consensushashing"
	"github.com/emberchain/emberd/domain/consensus/utils/deployments"
	"github.com/emberchain/emberd/domain/consensus/utils/duplexoutputprovider"
	"github.com/lightningnetwork/lnd/clock"
)

type chainVerifier struct {
	store         model.ChainStore
	params        *chainconfig.Params
	blockChecker  model.BlockChecker
	txValidator   model.TransactionValidator
	chainAcceptor model.ChainAcceptor
	clock         clock.Clock
}

// New wires a ChainVerifier over the given store with the default
// checker and acceptor stack for the network the params describe.
func New(store model.ChainStore, params *chainconfig.Params) model.ChainVerifier {
	txValidator := transactionvalidator.New(params, deployments.New(params))
	return &chainVerifier{
		store:         store,
		params:        params,
		blockChecker:  blockvalidator.New(params, txValidator),
		txValidator:   txValidator,
		chainAcceptor: chainacceptor.New(params, txValidator),
		clock:         clock.NewDefaultClock(),
	}
}

// VerifyBlock runs the block through the structural checks and then
// accepts it against the chain state its origin selects. The store is
// not mutated; committing an accepted block is the caller's business.
func (v *chainVerifier) VerifyBlock(block *externalapi.IndexedBlock,
	limits model.ConsensusLimits) error {

	now := v.clock.Now()
	err := v.blockChecker.CheckBlock(block, now, limits)
	if err != nil {
		return err
	}

	v.assertBestBlockConsistent()

	origin, err := v.store.BlockOrigin(block.Header)
	if err != nil {
		return err
	}

	var view model.StoreView
	var blockNumber uint64
	switch origin := origin.(type) {
	case model.KnownBlock:
		panic(fmt.Sprintf("block %s offered for verification is already stored",
			block.Hash()))
	case model.CanonChain:
		view = v.store.StoreView()
		blockNumber = origin.BlockNumber
	case model.SideChain:
		view, err = v.store.Fork(origin.Origin)
		blockNumber = origin.Origin.BlockNumber
	case model.SideChainBecomingCanonChain:
		view, err = v.store.Fork(origin.Origin)
		blockNumber = origin.Origin.BlockNumber
	default:
		panic(fmt.Sprintf("unknown block origin %T", origin))
	}
	if err != nil {
		return err
	}

	err = v.chainAcceptor.AcceptBlock(view, model.CanonBlock{Block: block},
		blockNumber, limits)
	if err != nil {
		return err
	}

	v.assertBestBlockConsistent()

	log.Tracef("Verified block %s as number %d", block.Hash(), blockNumber)
	return nil
}

// assertBestBlockConsistent panics when the store's best block
// bookkeeping disagrees with its canonical index. Verification only
// reads, so an inconsistency here is store corruption, not a rule
// violation.
func (v *chainVerifier) assertBestBlockConsistent() {
	best := v.store.BestBlock()
	hash, ok := v.store.BlockHash(best.Number)
	if !ok || hash != best.Hash {
		panic(fmt.Sprintf("store best block %s at number %d disagrees with the canonical index",
			best.Hash, best.Number))
	}
}

// VerifyHeader runs the context-free header checks only. No chain
// state is consulted.
func (v *chainVerifier) VerifyHeader(header *externalapi.IndexedBlockHeader) error {
	return v.blockChecker.CheckHeader(header, v.clock.Now())
}

// VerifyMempoolTransaction verifies a loose transaction as a mempool
// candidate at the given chain position. Spent outputs must all be
// resolvable through prevOuts; transaction metadata and headers come
// from the store.
func (v *chainVerifier) VerifyMempoolTransaction(prevOuts model.OutputProvider,
	blockNumber uint64, blockTime int64, tx *externalapi.Transaction,
	limits model.ConsensusLimits) error {

	indexed := consensushashing.NewIndexedTransaction(tx)

	err := v.txValidator.CheckMempoolTransaction(indexed, limits)
	if err != nil {
		return err
	}

	view := v.store.StoreView()
	outputs := duplexoutputprovider.New(prevOuts, duplexoutputprovider.Noop())
	canonTx := model.CanonTransaction{Transaction: indexed, Index: 0, Coinbase: false}
	fee, err := v.txValidator.AcceptTransaction(view, outputs, view, canonTx,
		blockNumber, blockTime, limits.MaxBlockSigOps())
	if err != nil {
		return err
	}

	log.Tracef("Verified mempool transaction %s paying %d in fees", indexed.ID, fee)
	return nil
}
