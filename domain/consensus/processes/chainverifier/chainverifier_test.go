package chainverifier

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/chainconfig"
	"github.com/emberchain/emberd/domain/chainstore"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/consensuslimits"
	"github.com/emberchain/emberd/domain/consensus/utils/testutils"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/pkg/errors"
)

// newTestVerifier builds a canonical chain of the given length in an
// in-memory store and wires a verifier with a frozen clock over it.
func newTestVerifier(t *testing.T, chainLength uint64) (
	*chainstore.ChainStore, []*externalapi.IndexedBlock, *chainVerifier) {

	params := &chainconfig.SimnetParams
	store, blocks := testutils.NewTestChain(t, params, chainLength)

	verifier := New(store, params).(*chainVerifier)
	verifier.clock = clock.NewTestClock(
		time.Unix(testutils.BaseTimestamp, 0).Add(24 * time.Hour))
	return store, blocks, verifier
}

func TestVerifyBlockExtendingTip(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 3)

	block := testutils.NewBlockBuilder(&chainconfig.SimnetParams, blocks[2].Hash(), 3).
		Build()
	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyBlock: unexpected error %+v", err)
	}
}

func TestVerifyBlockOrphan(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 3)

	unknownParent := chainhash.Hash{0xab}
	block := testutils.NewBlockBuilder(&chainconfig.SimnetParams, unknownParent, 10).
		Build()
	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if !errors.Is(err, chainstore.ErrUnknownParent) {
		t.Fatalf("VerifyBlock: expected ErrUnknownParent, got %+v", err)
	}
}

func TestVerifyBlockStructuralErrorBeforeOrigin(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 3)

	// A structurally broken block fails even when its parent is
	// unknown, since no chain state is consulted before the
	// context-free checks pass.
	block := testutils.NewBlockBuilder(&chainconfig.SimnetParams, chainhash.Hash{0xab}, 10).
		Build()
	block.Header.Header.MerkleRoot = chainhash.Hash{0x01}

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if !errors.Is(err, ruleerrors.ErrBadMerkleRoot) {
		t.Fatalf("VerifyBlock: expected ErrBadMerkleRoot, got %+v", err)
	}
}

func TestVerifyKnownBlockPanics(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 3)

	defer func() {
		if recover() == nil {
			t.Fatal("VerifyBlock: expected a panic for an already stored block")
		}
	}()
	_ = verifier.VerifyBlock(blocks[2], consensuslimits.NewLegacyLimits())
}

func TestVerifySideChainBlock(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 3)

	// Same number as the current tip, so the fork does not overtake it.
	side := testutils.NewBlockBuilder(&chainconfig.SimnetParams, blocks[1].Hash(), 10).
		Build()
	err := verifier.VerifyBlock(side, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyBlock: unexpected error %+v", err)
	}
}

func TestVerifySideChainOvertakingBlock(t *testing.T) {
	store, blocks, verifier := newTestVerifier(t, 3)

	params := &chainconfig.SimnetParams
	side1 := testutils.NewBlockBuilder(params, blocks[1].Hash(), 10).Build()
	err := store.Insert(side1)
	if err != nil {
		t.Fatalf("Insert: %+v", err)
	}

	side2 := testutils.NewBlockBuilder(params, side1.Hash(), 11).Build()
	err = verifier.VerifyBlock(side2, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyBlock: unexpected error %+v", err)
	}

	// Verification never commits: the stored best block is untouched.
	best := store.BestBlock()
	if best.Hash != blocks[2].Hash() {
		t.Fatalf("best block moved to %s", best.Hash)
	}
}

func TestVerifyBlockSpendingMatureCoinbase(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 102)

	params := &chainconfig.SimnetParams
	spend := testutils.NewTransactionBuilder().
		AddInput(blocks[1].Transactions[0].ID, 0).
		AddOutput(params.BaseSubsidy, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[101].Hash(), 102).
		AddTransaction(spend).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyBlock: unexpected error %+v", err)
	}
}

func TestVerifyBlockSpendingImmatureCoinbase(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 3)

	params := &chainconfig.SimnetParams
	spend := testutils.NewTransactionBuilder().
		AddInput(blocks[2].Transactions[0].ID, 0).
		AddOutput(params.BaseSubsidy, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[2].Hash(), 3).
		AddTransaction(spend).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if !errors.Is(err, ruleerrors.ErrImmatureSpend) {
		t.Fatalf("VerifyBlock: expected ErrImmatureSpend, got %+v", err)
	}
	index, ok := ruleerrors.TransactionIndex(err)
	if !ok || index != 1 {
		t.Fatalf("expected the violation attributed to transaction 1, got %d (%t)",
			index, ok)
	}
}

func TestVerifyBlockSameBlockChaining(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 102)

	params := &chainconfig.SimnetParams
	first := testutils.NewTransactionBuilder().
		AddInput(blocks[1].Transactions[0].ID, 0).
		AddOutput(params.BaseSubsidy, []byte{}).
		BuildIndexed()
	second := testutils.NewTransactionBuilder().
		AddInput(first.ID, 0).
		AddOutput(params.BaseSubsidy, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[101].Hash(), 102).
		AddTransaction(first.Tx).
		AddTransaction(second).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyBlock: unexpected error %+v", err)
	}
}

func TestVerifyBlockSameBlockOverspend(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 102)

	params := &chainconfig.SimnetParams
	first := testutils.NewTransactionBuilder().
		AddInput(blocks[1].Transactions[0].ID, 0).
		AddOutput(params.BaseSubsidy, []byte{}).
		BuildIndexed()
	second := testutils.NewTransactionBuilder().
		AddInput(first.ID, 0).
		AddOutput(params.BaseSubsidy+1, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[101].Hash(), 102).
		AddTransaction(first.Tx).
		AddTransaction(second).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if !errors.Is(err, ruleerrors.ErrSpendTooHigh) {
		t.Fatalf("VerifyBlock: expected ErrSpendTooHigh, got %+v", err)
	}
	index, ok := ruleerrors.TransactionIndex(err)
	if !ok || index != 2 {
		t.Fatalf("expected the violation attributed to transaction 2, got %d (%t)",
			index, ok)
	}
}

func TestVerifyBlockMissingPrevout(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 3)

	params := &chainconfig.SimnetParams
	missing := externalapi.Outpoint{TransactionID: chainhash.Hash{0x42}, Index: 7}
	spend := testutils.NewTransactionBuilder().
		AddInput(missing.TransactionID, missing.Index).
		AddOutput(1, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[2].Hash(), 3).
		AddTransaction(spend).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	var missingErr ruleerrors.ErrMissingTxOut
	if !errors.As(err, &missingErr) {
		t.Fatalf("VerifyBlock: expected ErrMissingTxOut, got %+v", err)
	}
	if len(missingErr.MissingOutpoints) != 1 || missingErr.MissingOutpoints[0] != missing {
		t.Fatalf("unexpected missing outpoints %v", missingErr.MissingOutpoints)
	}
}

func TestVerifyBlockSigOpsLimit(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 102)

	params := &chainconfig.SimnetParams
	checksig := []byte{0xac, 0xac} // two OP_CHECKSIG
	first := testutils.NewTransactionBuilder().
		AddInput(blocks[1].Transactions[0].ID, 0).
		AddSignatureScript(checksig).
		AddOutput(params.BaseSubsidy, []byte{}).
		BuildIndexed()
	second := testutils.NewTransactionBuilder().
		AddInput(first.ID, 0).
		AddSignatureScript(checksig).
		AddOutput(params.BaseSubsidy, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[101].Hash(), 102).
		AddTransaction(first.Tx).
		AddTransaction(second).
		Build()

	// Each transaction stays within the limit on its own; only the
	// block total breaches it.
	limits := consensuslimits.NewCustomLimits(3, 1_000_000, 1_000_000)
	err := verifier.VerifyBlock(block, limits)
	if !errors.Is(err, ruleerrors.ErrBlockSigOpsTooHigh) {
		t.Fatalf("VerifyBlock: expected ErrBlockSigOpsTooHigh, got %+v", err)
	}
	if _, ok := ruleerrors.TransactionIndex(err); ok {
		t.Fatal("block level violation should not be attributed to a transaction")
	}
}

func TestVerifyBlockCoinbaseOverspend(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 1)

	params := &chainconfig.SimnetParams
	block := testutils.NewBlockBuilder(params, blocks[0].Hash(), 1).
		SetCoinbaseValue(5_000_000_001).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	var coinbaseErr ruleerrors.ErrBadCoinbaseValue
	if !errors.As(err, &coinbaseErr) {
		t.Fatalf("VerifyBlock: expected ErrBadCoinbaseValue, got %+v", err)
	}
	if coinbaseErr.ExpectedMax != 5_000_000_000 || coinbaseErr.Actual != 5_000_000_001 {
		t.Fatalf("unexpected coinbase violation %+v", coinbaseErr)
	}
}

func TestVerifyBlockCoinbaseClaimsFees(t *testing.T) {
	_, blocks, verifier := newTestVerifier(t, 102)

	params := &chainconfig.SimnetParams
	spend := testutils.NewTransactionBuilder().
		AddInput(blocks[1].Transactions[0].ID, 0).
		AddOutput(params.BaseSubsidy-25, []byte{}).
		Build()
	block := testutils.NewBlockBuilder(params, blocks[101].Hash(), 102).
		SetCoinbaseValue(params.BaseSubsidy + 25).
		AddTransaction(spend).
		Build()

	err := verifier.VerifyBlock(block, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyBlock: unexpected error %+v", err)
	}
}

func TestVerifyHeaderIgnoresChainState(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 3)

	// Unknown parent, yet header verification succeeds: the header
	// path is context free.
	block := testutils.NewBlockBuilder(&chainconfig.SimnetParams, chainhash.Hash{0xab}, 10).
		Build()
	err := verifier.VerifyHeader(block.Header)
	if err != nil {
		t.Fatalf("VerifyHeader: unexpected error %+v", err)
	}
}

func TestVerifyHeaderTimestampTooFarInFuture(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 1)

	farFuture := time.Unix(testutils.BaseTimestamp, 0).Add(48 * time.Hour).Unix()
	block := testutils.NewBlockBuilder(&chainconfig.SimnetParams, chainhash.Hash{0xab}, 10).
		SetTimestamp(farFuture).
		Build()
	err := verifier.VerifyHeader(block.Header)
	if !errors.Is(err, ruleerrors.ErrTimestampTooFarInFuture) {
		t.Fatalf("VerifyHeader: expected ErrTimestampTooFarInFuture, got %+v", err)
	}
}

// mapOutputProvider serves outputs for unconfirmed parent transactions
// the way a mempool would.
type mapOutputProvider map[externalapi.Outpoint]*externalapi.TransactionOutput

func (p mapOutputProvider) TransactionOutput(outpoint externalapi.Outpoint) (
	*externalapi.TransactionOutput, bool) {

	output, ok := p[outpoint]
	return output, ok
}

var _ model.OutputProvider = mapOutputProvider{}

func TestVerifyMempoolTransaction(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 3)

	parentID := chainhash.Hash{0x77}
	prevOuts := mapOutputProvider{
		{TransactionID: parentID, Index: 0}: {Value: 1000, ScriptPubKey: []byte{}},
	}
	tx := testutils.NewTransactionBuilder().
		AddInput(parentID, 0).
		AddOutput(900, []byte{}).
		Build()

	err := verifier.VerifyMempoolTransaction(prevOuts, 3,
		testutils.BaseTimestamp+100, tx, consensuslimits.NewLegacyLimits())
	if err != nil {
		t.Fatalf("VerifyMempoolTransaction: unexpected error %+v", err)
	}
}

func TestVerifyMempoolTransactionMissingPrevout(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 3)

	tx := testutils.NewTransactionBuilder().
		AddInput(chainhash.Hash{0x77}, 0).
		AddOutput(900, []byte{}).
		Build()

	err := verifier.VerifyMempoolTransaction(mapOutputProvider{}, 3,
		testutils.BaseTimestamp+100, tx, consensuslimits.NewLegacyLimits())
	var missingErr ruleerrors.ErrMissingTxOut
	if !errors.As(err, &missingErr) {
		t.Fatalf("VerifyMempoolTransaction: expected ErrMissingTxOut, got %+v", err)
	}
}

func TestVerifyMempoolTransactionRejectsCoinbase(t *testing.T) {
	_, _, verifier := newTestVerifier(t, 3)

	coinbase := testutils.CoinbaseTransaction(99, 1000)
	err := verifier.VerifyMempoolTransaction(mapOutputProvider{}, 3,
		testutils.BaseTimestamp+100, coinbase, consensuslimits.NewLegacyLimits())
	if !errors.Is(err, ruleerrors.ErrCoinbaseInMempool) {
		t.Fatalf("VerifyMempoolTransaction: expected ErrCoinbaseInMempool, got %+v", err)
	}
}
