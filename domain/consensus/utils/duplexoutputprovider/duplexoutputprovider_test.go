package duplexoutputprovider

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

type mapProvider map[externalapi.Outpoint]*externalapi.TransactionOutput

func (p mapProvider) TransactionOutput(outpoint externalapi.Outpoint) (
	*externalapi.TransactionOutput, bool) {

	output, ok := p[outpoint]
	return output, ok
}

func TestDuplexResolutionOrder(t *testing.T) {
	shared := externalapi.Outpoint{TransactionID: chainhash.Hash{0x01}}
	onlySecond := externalapi.Outpoint{TransactionID: chainhash.Hash{0x02}}
	absent := externalapi.Outpoint{TransactionID: chainhash.Hash{0x03}}

	first := mapProvider{shared: {Value: 1}}
	second := mapProvider{shared: {Value: 2}, onlySecond: {Value: 3}}
	duplex := New(first, second)

	output, ok := duplex.TransactionOutput(shared)
	if !ok || output.Value != 1 {
		t.Fatalf("expected the first provider to shadow the second, got %v (%t)", output, ok)
	}
	output, ok = duplex.TransactionOutput(onlySecond)
	if !ok || output.Value != 3 {
		t.Fatalf("expected fallback to the second provider, got %v (%t)", output, ok)
	}
	if _, ok := duplex.TransactionOutput(absent); ok {
		t.Fatal("expected an absent outpoint to stay unresolved")
	}
}

func TestNoopResolvesNothing(t *testing.T) {
	outpoint := externalapi.Outpoint{TransactionID: chainhash.Hash{0x01}}
	if _, ok := Noop().TransactionOutput(outpoint); ok {
		t.Fatal("the no-op provider must not resolve any outpoint")
	}
}
