package duplexoutputprovider

import (
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// duplexOutputProvider resolves outputs from two providers in a fixed,
// explicit order: first is always consulted before second. The order
// is part of the acceptance contract. A block's own preceding
// transactions shadow the chain store during same-block chaining, and
// mempool-local transactions are consulted before anything else on the
// mempool path.
type duplexOutputProvider struct {
	first  model.OutputProvider
	second model.OutputProvider
}

// New returns an OutputProvider resolving from first, then from second.
func New(first, second model.OutputProvider) model.OutputProvider {
	return duplexOutputProvider{first: first, second: second}
}

func (d duplexOutputProvider) TransactionOutput(outpoint externalapi.Outpoint) (*externalapi.TransactionOutput, bool) {
	if output, ok := d.first.TransactionOutput(outpoint); ok {
		return output, true
	}
	return d.second.TransactionOutput(outpoint)
}

// noopProvider reports every output as absent. It deliberately blocks
// a resolution path: the mempool path uses it as the second provider
// so that prevout resolution never reaches into the confirmed chain
// store, which participates through the separately supplied meta and
// header providers instead.
type noopProvider struct{}

// Noop returns an OutputProvider that resolves nothing.
func Noop() model.OutputProvider {
	return noopProvider{}
}

func (noopProvider) TransactionOutput(_ externalapi.Outpoint) (*externalapi.TransactionOutput, bool) {
	return nil, false
}
