package model

import (
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// CanonBlock marks an indexed block as the block currently being
// accepted, as opposed to blocks already stored. It borrows the
// underlying block for the duration of a check.
type CanonBlock struct {
	Block *externalapi.IndexedBlock
}

// CanonTransaction wraps an indexed transaction together with the
// contextual information acceptance checks need: its position within
// the block under acceptance and whether it is the coinbase. It does
// not own the underlying transaction.
type CanonTransaction struct {
	Transaction *externalapi.IndexedTransaction
	Index       int
	Coinbase    bool
}
