package constants

const (
	// SatoshiPerCoin is the number of satoshi in one coin.
	SatoshiPerCoin = 100_000_000

	// MaxSatoshi is the maximum transaction amount allowed in satoshi.
	MaxSatoshi = 21_000_000 * SatoshiPerCoin

	// LockTimeThreshold is the number below which a transaction lock
	// time is interpreted as a block number rather than a unix time.
	LockTimeThreshold = 500_000_000

	// SequenceLockTimeDisabled is the flag that, when set on an input's
	// sequence, disables relative lock-time enforcement for that input.
	SequenceLockTimeDisabled = 1 << 31

	// SequenceLockTimeIsSeconds is the flag that, when set on an
	// input's sequence, interprets the relative lock time as units of
	// 512 seconds rather than blocks.
	SequenceLockTimeIsSeconds = 1 << 22

	// SequenceLockTimeMask is the mask extracting the relative lock
	// time from an input's sequence.
	SequenceLockTimeMask = 0x0000ffff

	// MaxTxInSequenceNum is the maximum sequence number an input can
	// carry. A transaction whose inputs all carry it is final
	// regardless of its lock time.
	MaxTxInSequenceNum = 0xffffffff
)
