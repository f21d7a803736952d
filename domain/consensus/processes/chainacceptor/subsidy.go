package chainacceptor

import (
	"github.com/emberchain/emberd/domain/chainconfig"
)

// CalcBlockSubsidy returns the amount of new coin a block at the given
// number may create, halving every params.SubsidyHalvingInterval
// blocks until it reaches zero.
func CalcBlockSubsidy(blockNumber uint64, params *chainconfig.Params) uint64 {
	if params.SubsidyHalvingInterval == 0 {
		return params.BaseSubsidy
	}
	halvings := blockNumber / params.SubsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return params.BaseSubsidy >> halvings
}
