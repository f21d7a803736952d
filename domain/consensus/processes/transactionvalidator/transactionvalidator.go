package transactionvalidator

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/deployments"
)

// transactionValidator runs both phases of transaction verification:
// the context-free structural rules and the context-dependent
// acceptance rules. It implements model.TransactionChecker and
// model.TransactionAcceptor.
type transactionValidator struct {
	params      *chainconfig.Params
	deployments *deployments.Deployments
}

// New instantiates a new transaction validator.
func New(params *chainconfig.Params, deployments *deployments.Deployments) model.TransactionValidator {
	return &transactionValidator{
		params:      params,
		deployments: deployments,
	}
}

// SigOpCount counts the signature operations across all of the
// transaction's scripts. Scripts are not executed, only scanned, so
// the count is a cheap denial-of-service bound rather than a statement
// about script validity.
func SigOpCount(tx *externalapi.Transaction) int {
	sigOps := 0
	for _, input := range tx.Inputs {
		sigOps += txscript.GetSigOpCount(input.SignatureScript)
	}
	for _, output := range tx.Outputs {
		sigOps += txscript.GetSigOpCount(output.ScriptPubKey)
	}
	return sigOps
}
