package chainconfig

import (
	"math/big"
	"time"

	"github.com/emberchain/emberd/util/difficulty"
)

// ChainNet represents which chain variant a message or rule decision
// belongs to.
type ChainNet uint32

// Constants used to indicate the network.
const (
	// Mainnet represents the main network.
	Mainnet ChainNet = 0xd9b4bef9

	// Testnet represents the public test network.
	Testnet ChainNet = 0x0709110b

	// Simnet represents the simulation test network.
	Simnet ChainNet = 0x12141c16
)

// Params defines a chain variant's network parameters. Distinct
// variants share the rule pipeline but differ in the values below.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net ChainNet

	// CoinbaseMaturity is the number of confirmations a coinbase
	// output must accumulate before it may be spent.
	CoinbaseMaturity uint64

	// BaseSubsidy is the block subsidy at height zero, in satoshi.
	BaseSubsidy uint64

	// SubsidyHalvingInterval is the number of blocks between subsidy
	// halvings.
	SubsidyHalvingInterval uint64

	// PowLimit is the highest (easiest) permitted proof-of-work target.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in compact form.
	PowLimitBits uint32

	// SkipProofOfWork indicates the proof-of-work hash check is not
	// enforced. Only ever set on test networks.
	SkipProofOfWork bool

	// TimestampDeviation is how far ahead of the verifier's current
	// time a header timestamp may be.
	TimestampDeviation time.Duration

	// CSVActivationNumber is the block number at which relative
	// lock-time enforcement via input sequences activates.
	CSVActivationNumber uint64
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:                   "mainnet",
	Net:                    Mainnet,
	CoinbaseMaturity:       100,
	BaseSubsidy:            50 * 100_000_000,
	SubsidyHalvingInterval: 210_000,
	PowLimit:               difficulty.CompactToBig(0x1d00ffff),
	PowLimitBits:           0x1d00ffff,
	TimestampDeviation:     2 * time.Hour,
	CSVActivationNumber:    419_328,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:                   "testnet",
	Net:                    Testnet,
	CoinbaseMaturity:       100,
	BaseSubsidy:            50 * 100_000_000,
	SubsidyHalvingInterval: 210_000,
	PowLimit:               difficulty.CompactToBig(0x1d00ffff),
	PowLimitBits:           0x1d00ffff,
	TimestampDeviation:     2 * time.Hour,
	CSVActivationNumber:    770_112,
}

// SimnetParams defines the network parameters for the simulation test
// network. It exists to drive tests and has no proof-of-work
// requirement.
var SimnetParams = Params{
	Name:                   "simnet",
	Net:                    Simnet,
	CoinbaseMaturity:       100,
	BaseSubsidy:            50 * 100_000_000,
	SubsidyHalvingInterval: 210_000,
	PowLimit:               difficulty.CompactToBig(0x207fffff),
	PowLimitBits:           0x207fffff,
	SkipProofOfWork:        true,
	TimestampDeviation:     2 * time.Hour,
	CSVActivationNumber:    0,
}
