package blockvalidator

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/processes/transactionvalidator"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/merkle"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// CheckBlock runs every structural block rule. No chain state is
// consulted; a block that passes here may still be rejected during
// contextual acceptance.
func (v *blockValidator) CheckBlock(block *externalapi.IndexedBlock, now time.Time, limits model.ConsensusLimits) error {
	err := v.CheckHeader(block.Header, now)
	if err != nil {
		return err
	}
	err = v.checkCoinbasePlacement(block)
	if err != nil {
		return err
	}
	err = v.checkNoDuplicateTransactions(block)
	if err != nil {
		return err
	}
	err = v.checkMerkleRoot(block)
	if err != nil {
		return err
	}
	err = v.checkBlockSize(block, limits)
	if err != nil {
		return err
	}
	err = v.checkTransactionsInIsolation(block, limits)
	if err != nil {
		return err
	}

	log.Tracef("Block %s passed structural verification", block.Hash())
	return nil
}

func (v *blockValidator) checkCoinbasePlacement(block *externalapi.IndexedBlock) error {
	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTransactions,
			"block %s has no transactions", block.Hash())
	}
	if !block.Transactions[0].Tx.IsCoinbase() {
		return errors.Wrapf(ruleerrors.ErrFirstTxNotCoinbase,
			"first transaction of block %s is not a coinbase", block.Hash())
	}
	for i, tx := range block.Transactions[1:] {
		if tx.Tx.IsCoinbase() {
			return errors.Wrapf(ruleerrors.ErrMultipleCoinbases,
				"block %s contains a second coinbase at index %d", block.Hash(), i+1)
		}
	}
	return nil
}

func (v *blockValidator) checkNoDuplicateTransactions(block *externalapi.IndexedBlock) error {
	seen := make(map[chainhash.Hash]struct{}, len(block.Transactions))
	for _, tx := range block.Transactions {
		if _, ok := seen[tx.ID]; ok {
			return errors.Wrapf(ruleerrors.ErrDuplicateTx,
				"block %s contains transaction %s more than once", block.Hash(), tx.ID)
		}
		seen[tx.ID] = struct{}{}
	}
	return nil
}

func (v *blockValidator) checkMerkleRoot(block *externalapi.IndexedBlock) error {
	calculated := merkle.CalcMerkleRoot(block.Transactions)
	if calculated != block.Header.Header.MerkleRoot {
		return errors.Wrapf(ruleerrors.ErrBadMerkleRoot,
			"block %s merkle root is %s but the header claims %s",
			block.Hash(), calculated, block.Header.Header.MerkleRoot)
	}
	return nil
}

func (v *blockValidator) checkBlockSize(block *externalapi.IndexedBlock, limits model.ConsensusLimits) error {
	size := serialization.BlockSerializedSize(block)
	if size > limits.MaxBlockSize() {
		return errors.Wrapf(ruleerrors.ErrBlockSizeTooHigh,
			"block %s is %d bytes which is above the allowed maximum of %d bytes",
			block.Hash(), size, limits.MaxBlockSize())
	}
	return nil
}

func (v *blockValidator) checkTransactionsInIsolation(block *externalapi.IndexedBlock, limits model.ConsensusLimits) error {
	for i, tx := range block.Transactions {
		err := v.txChecker.CheckTransaction(tx, limits)
		if err != nil {
			return ruleerrors.NewErrInvalidTransactionInBlock(i, err)
		}
		sigOps := transactionvalidator.SigOpCount(tx.Tx)
		if sigOps > limits.MaxBlockSigOps() {
			return ruleerrors.NewErrInvalidTransactionInBlock(i,
				errors.Wrapf(ruleerrors.ErrTxSigOpsTooHigh,
					"transaction %s has %d signature operations which is above the allowed maximum of %d",
					tx.ID, sigOps, limits.MaxBlockSigOps()))
		}
	}
	return nil
}
