package model

// ChainAcceptor runs context-dependent acceptance of a block against a
// store view. The same acceptance logic serves the canonical chain and
// side branches; only the view differs.
type ChainAcceptor interface {
	AcceptBlock(view StoreView, block CanonBlock, blockNumber uint64, limits ConsensusLimits) error
}

// TransactionAcceptor runs context-dependent acceptance of a single
// transaction. blockNumber and blockTime are the height and time at
// which the transaction would be confirmed, which for mempool
// transactions is not necessarily the current chain tip. On success it
// returns the transaction's fee.
type TransactionAcceptor interface {
	AcceptTransaction(meta TransactionMetaProvider, outputs OutputProvider,
		headers BlockHeaderProvider, tx CanonTransaction, blockNumber uint64,
		blockTime int64, maxSigOps int) (fee uint64, err error)
}
