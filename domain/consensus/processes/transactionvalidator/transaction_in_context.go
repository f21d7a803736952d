package transactionvalidator

import (
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// AcceptTransaction runs the context-dependent acceptance rules for a
// single transaction against the supplied providers. blockNumber and
// blockTime are the height and time the transaction would be confirmed
// at. The returned fee is only meaningful on success.
//
// A coinbase creates value rather than spending it, so it has no
// inputs to resolve here; its claimed value is checked at the block
// level where the block's total fees are known.
func (v *transactionValidator) AcceptTransaction(meta model.TransactionMetaProvider,
	outputs model.OutputProvider, headers model.BlockHeaderProvider,
	tx model.CanonTransaction, blockNumber uint64, blockTime int64,
	maxSigOps int) (fee uint64, err error) {

	if tx.Coinbase {
		return 0, nil
	}

	err = v.checkTransactionFinalized(tx.Transaction, blockNumber, blockTime)
	if err != nil {
		return 0, err
	}

	var totalIn uint64
	for _, input := range tx.Transaction.Tx.Inputs {
		output, ok := outputs.TransactionOutput(input.PreviousOutpoint)
		if !ok {
			return 0, ruleerrors.NewErrMissingTxOut(
				[]externalapi.Outpoint{input.PreviousOutpoint})
		}

		prevOutMeta, confirmed := meta.TransactionMeta(input.PreviousOutpoint.TransactionID)
		if confirmed {
			err = v.checkCoinbaseMaturity(tx.Transaction, input, prevOutMeta, blockNumber)
			if err != nil {
				return 0, err
			}
			if v.deployments.CSVActive(blockNumber) {
				err = v.checkSequenceLock(tx.Transaction, input, prevOutMeta,
					headers, blockNumber, blockTime)
				if err != nil {
					return 0, err
				}
			}
		}

		totalIn += output.Value
		if totalIn > constants.MaxSatoshi {
			return 0, errors.Wrapf(ruleerrors.ErrBadTxOutValue,
				"transaction %s total input value is higher than the allowed maximum of %d",
				tx.Transaction.ID, uint64(constants.MaxSatoshi))
		}
	}

	var totalOut uint64
	for _, output := range tx.Transaction.Tx.Outputs {
		totalOut += output.Value
	}
	if totalIn < totalOut {
		return 0, errors.Wrapf(ruleerrors.ErrSpendTooHigh,
			"transaction %s spends %d which is higher than its input value of %d",
			tx.Transaction.ID, totalOut, totalIn)
	}

	sigOps := SigOpCount(tx.Transaction.Tx)
	if sigOps > maxSigOps {
		return 0, errors.Wrapf(ruleerrors.ErrTxSigOpsTooHigh,
			"transaction %s has %d signature operations which is above the allowed maximum of %d",
			tx.Transaction.ID, sigOps, maxSigOps)
	}

	return totalIn - totalOut, nil
}

func (v *transactionValidator) checkCoinbaseMaturity(tx *externalapi.IndexedTransaction,
	input *externalapi.TransactionInput, prevOutMeta *model.TransactionMeta,
	blockNumber uint64) error {

	if !prevOutMeta.IsCoinbase {
		return nil
	}
	if blockNumber < prevOutMeta.BlockNumber+v.params.CoinbaseMaturity {
		return errors.Wrapf(ruleerrors.ErrImmatureSpend,
			"transaction %s spends coinbase outpoint %s confirmed at number %d "+
				"at number %d before required maturity of %d blocks",
			tx.ID, input.PreviousOutpoint, prevOutMeta.BlockNumber,
			blockNumber, v.params.CoinbaseMaturity)
	}
	return nil
}

// checkSequenceLock enforces the relative lock time an input's
// sequence encodes, measured from the confirmation of the output it
// spends.
func (v *transactionValidator) checkSequenceLock(tx *externalapi.IndexedTransaction,
	input *externalapi.TransactionInput, prevOutMeta *model.TransactionMeta,
	headers model.BlockHeaderProvider, blockNumber uint64, blockTime int64) error {

	if input.Sequence&constants.SequenceLockTimeDisabled != 0 {
		return nil
	}

	lockValue := uint64(input.Sequence & constants.SequenceLockTimeMask)
	if input.Sequence&constants.SequenceLockTimeIsSeconds != 0 {
		confirmedHeader, ok := headers.BlockHeaderByNumber(prevOutMeta.BlockNumber)
		if !ok {
			return ruleerrors.NewErrMissingTxOut(
				[]externalapi.Outpoint{input.PreviousOutpoint})
		}
		// Lock values in seconds mode are in units of 512 seconds.
		requiredTime := confirmedHeader.Header.Timestamp + int64(lockValue<<9)
		if blockTime < requiredTime {
			return errors.Wrapf(ruleerrors.ErrUnfinalizedTx,
				"transaction %s input spending %s is time locked until %d",
				tx.ID, input.PreviousOutpoint, requiredTime)
		}
		return nil
	}

	requiredNumber := prevOutMeta.BlockNumber + lockValue
	if blockNumber < requiredNumber {
		return errors.Wrapf(ruleerrors.ErrUnfinalizedTx,
			"transaction %s input spending %s is locked until number %d",
			tx.ID, input.PreviousOutpoint, requiredNumber)
	}
	return nil
}

func (v *transactionValidator) checkTransactionFinalized(tx *externalapi.IndexedTransaction,
	blockNumber uint64, blockTime int64) error {

	lockTime := uint64(tx.Tx.LockTime)
	if lockTime == 0 {
		return nil
	}

	cutoff := blockNumber
	if lockTime >= constants.LockTimeThreshold {
		cutoff = uint64(blockTime)
	}
	if lockTime < cutoff {
		return nil
	}

	// A transaction with a future lock time is still final when every
	// input opts out via the maximal sequence number.
	for _, input := range tx.Tx.Inputs {
		if input.Sequence != constants.MaxTxInSequenceNum {
			return errors.Wrapf(ruleerrors.ErrUnfinalizedTx,
				"transaction %s has lock time %d which is not final at number %d time %d",
				tx.ID, lockTime, blockNumber, blockTime)
		}
	}
	return nil
}
