package deployments

import (
	"github.com/emberchain/emberd/domain/chainconfig"
)

// Deployments tracks which soft-fork rule changes are active at a
// given block number. It is constructed once per orchestrator and is
// read-only afterwards; activation is recomputed from the number on
// each query instead of cached, so no synchronization is needed.
type Deployments struct {
	params *chainconfig.Params
}

// New returns the deployments state for the given network.
func New(params *chainconfig.Params) *Deployments {
	return &Deployments{params: params}
}

// CSVActive reports whether relative lock-time enforcement via input
// sequence numbers is active at the given block number.
func (d *Deployments) CSVActive(blockNumber uint64) bool {
	return blockNumber >= d.params.CSVActivationNumber
}
