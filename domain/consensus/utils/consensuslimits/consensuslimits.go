package consensuslimits

import (
	"github.com/emberchain/emberd/domain/consensus/model"
)

const (
	legacyMaxBlockSize   = 1_000_000
	legacyMaxBlockSigOps = 20_000
)

// legacyLimits is the original set of consensus ceilings, introduced
// to mitigate denial of service in the protocol's infancy.
type legacyLimits struct{}

// NewLegacyLimits returns the default consensus-limits policy:
// 1,000,000 byte blocks and transactions, 20,000 signature operations
// per block. The returned policy is immutable and safe for concurrent
// use.
func NewLegacyLimits() model.ConsensusLimits {
	return legacyLimits{}
}

func (legacyLimits) MaxBlockSigOps() int     { return legacyMaxBlockSigOps }
func (legacyLimits) MaxBlockSize() int       { return legacyMaxBlockSize }
func (legacyLimits) MaxTransactionSize() int { return legacyMaxBlockSize }

// customLimits is a fixed set of ceilings for chain variants and tests
// that need something other than the legacy values.
type customLimits struct {
	maxBlockSigOps     int
	maxBlockSize       int
	maxTransactionSize int
}

// NewCustomLimits returns an immutable consensus-limits policy with the
// given ceilings.
func NewCustomLimits(maxBlockSigOps, maxBlockSize, maxTransactionSize int) model.ConsensusLimits {
	return customLimits{
		maxBlockSigOps:     maxBlockSigOps,
		maxBlockSize:       maxBlockSize,
		maxTransactionSize: maxTransactionSize,
	}
}

func (l customLimits) MaxBlockSigOps() int     { return l.maxBlockSigOps }
func (l customLimits) MaxBlockSize() int       { return l.maxBlockSize }
func (l customLimits) MaxTransactionSize() int { return l.maxTransactionSize }
