package blockvalidator

import (
	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/consensus/model"
)

// blockValidator runs the context-free structural rules for headers
// and whole blocks. It holds no chain state; everything it checks is
// derivable from the block itself, the captured current time, and the
// limits policy.
type blockValidator struct {
	params    *chainconfig.Params
	txChecker model.TransactionChecker
}

// New instantiates a new structural block validator.
func New(params *chainconfig.Params, txChecker model.TransactionChecker) model.BlockChecker {
	return &blockValidator{
		params:    params,
		txChecker: txChecker,
	}
}
