package chainacceptor

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/processes/transactionvalidator"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/duplexoutputprovider"
	"github.com/pkg/errors"
)

type chainAcceptor struct {
	params     *chainconfig.Params
	txAcceptor model.TransactionAcceptor
}

// New returns a ChainAcceptor that accepts canonical blocks against a
// store view using the given transaction acceptor.
func New(params *chainconfig.Params, txAcceptor model.TransactionAcceptor) model.ChainAcceptor {
	return &chainAcceptor{
		params:     params,
		txAcceptor: txAcceptor,
	}
}

// AcceptBlock runs the context-dependent acceptance rules for a block
// assumed to extend the chain the view exposes at the given number.
func (a *chainAcceptor) AcceptBlock(view model.StoreView, block model.CanonBlock,
	blockNumber uint64, limits model.ConsensusLimits) error {

	err := a.checkBlockSigOps(block, limits)
	if err != nil {
		return err
	}

	blockTime := block.Block.Header.Header.Timestamp
	precedingOutputs := newBlockOutputProvider()

	var totalFees uint64
	for i, tx := range block.Block.Transactions {
		if i == 0 {
			precedingOutputs.addTransaction(tx)
			continue
		}

		outputs := duplexoutputprovider.New(precedingOutputs, view)
		canonTx := model.CanonTransaction{Transaction: tx, Index: i, Coinbase: false}
		fee, err := a.txAcceptor.AcceptTransaction(view, outputs, view, canonTx,
			blockNumber, blockTime, limits.MaxBlockSigOps())
		if err != nil {
			return ruleerrors.NewErrInvalidTransactionInBlock(i, err)
		}

		totalFees += fee
		precedingOutputs.addTransaction(tx)
	}

	err = a.checkCoinbaseValue(block, blockNumber, totalFees)
	if err != nil {
		return err
	}

	log.Debugf("Accepted block %s at number %d collecting %s in fees",
		block.Block.Hash(), blockNumber, btcutil.Amount(totalFees))
	return nil
}

// checkBlockSigOps bounds the signature operations of the block as a
// whole. Individual transactions are bounded separately during
// acceptance.
func (a *chainAcceptor) checkBlockSigOps(block model.CanonBlock,
	limits model.ConsensusLimits) error {

	totalSigOps := 0
	for _, tx := range block.Block.Transactions {
		totalSigOps += transactionvalidator.SigOpCount(tx.Tx)
		if totalSigOps > limits.MaxBlockSigOps() {
			return errors.Wrapf(ruleerrors.ErrBlockSigOpsTooHigh,
				"block %s has more than the allowed maximum of %d signature operations",
				block.Block.Hash(), limits.MaxBlockSigOps())
		}
	}
	return nil
}

// checkCoinbaseValue verifies the coinbase claims no more than the
// block subsidy plus the fees the block's transactions paid.
func (a *chainAcceptor) checkCoinbaseValue(block model.CanonBlock,
	blockNumber uint64, totalFees uint64) error {

	var claimed uint64
	for _, output := range block.Block.Transactions[0].Tx.Outputs {
		claimed += output.Value
	}

	expectedMax := CalcBlockSubsidy(blockNumber, a.params) + totalFees
	if claimed > expectedMax {
		return ruleerrors.NewErrBadCoinbaseValue(expectedMax, claimed)
	}
	return nil
}

// blockOutputProvider resolves outpoints created by transactions that
// precede the one currently being accepted within the same block.
type blockOutputProvider struct {
	outputs map[externalapi.Outpoint]*externalapi.TransactionOutput
}

func newBlockOutputProvider() *blockOutputProvider {
	return &blockOutputProvider{
		outputs: make(map[externalapi.Outpoint]*externalapi.TransactionOutput),
	}
}

func (p *blockOutputProvider) addTransaction(tx *externalapi.IndexedTransaction) {
	for index, output := range tx.Tx.Outputs {
		outpoint := externalapi.Outpoint{TransactionID: tx.ID, Index: uint32(index)}
		p.outputs[outpoint] = output
	}
}

func (p *blockOutputProvider) TransactionOutput(outpoint externalapi.Outpoint) (
	*externalapi.TransactionOutput, bool) {

	output, ok := p.outputs[outpoint]
	return output, ok
}
