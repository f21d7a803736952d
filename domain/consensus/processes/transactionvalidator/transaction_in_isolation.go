package transactionvalidator

import (
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/constants"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// CheckTransaction runs the structural transaction rules: everything
// decidable without knowing whether the referenced outputs exist.
func (v *transactionValidator) CheckTransaction(tx *externalapi.IndexedTransaction, limits model.ConsensusLimits) error {
	err := v.checkTransactionInputs(tx)
	if err != nil {
		return err
	}
	err = v.checkTransactionOutputValues(tx)
	if err != nil {
		return err
	}
	return v.checkTransactionSize(tx, limits)
}

// CheckMempoolTransaction runs the structural rules for a transaction
// bound for the mempool. A coinbase is only meaningful inside a block,
// so it is additionally rejected here.
func (v *transactionValidator) CheckMempoolTransaction(tx *externalapi.IndexedTransaction, limits model.ConsensusLimits) error {
	if tx.Tx.IsCoinbase() {
		return errors.Wrapf(ruleerrors.ErrCoinbaseInMempool,
			"transaction %s is a coinbase", tx.ID)
	}
	return v.CheckTransaction(tx, limits)
}

func (v *transactionValidator) checkTransactionInputs(tx *externalapi.IndexedTransaction) error {
	if len(tx.Tx.Inputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTxInputs, "transaction %s has no inputs", tx.ID)
	}
	existingOutpoints := make(map[externalapi.Outpoint]struct{}, len(tx.Tx.Inputs))
	for _, input := range tx.Tx.Inputs {
		if _, ok := existingOutpoints[input.PreviousOutpoint]; ok {
			return errors.Wrapf(ruleerrors.ErrDuplicateTxInputs,
				"transaction %s spends outpoint %s more than once",
				tx.ID, input.PreviousOutpoint)
		}
		existingOutpoints[input.PreviousOutpoint] = struct{}{}
	}
	return nil
}

func (v *transactionValidator) checkTransactionOutputValues(tx *externalapi.IndexedTransaction) error {
	var totalValue uint64
	for _, output := range tx.Tx.Outputs {
		if output.Value > constants.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue,
				"transaction %s output value %d is higher than the allowed maximum of %d",
				tx.ID, output.Value, uint64(constants.MaxSatoshi))
		}
		totalValue += output.Value
		if totalValue > constants.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue,
				"transaction %s total output value is higher than the allowed maximum of %d",
				tx.ID, uint64(constants.MaxSatoshi))
		}
	}
	return nil
}

func (v *transactionValidator) checkTransactionSize(tx *externalapi.IndexedTransaction, limits model.ConsensusLimits) error {
	size := serialization.TransactionSerializedSize(tx.Tx)
	if size > limits.MaxTransactionSize() {
		return errors.Wrapf(ruleerrors.ErrTxSizeTooHigh,
			"transaction %s is %d bytes which is above the allowed maximum of %d bytes",
			tx.ID, size, limits.MaxTransactionSize())
	}
	return nil
}
