package chainacceptor

import (
	"testing"

	"github.com/emberchain/emberd/domain/chainconfig"
)

func TestCalcBlockSubsidy(t *testing.T) {
	params := &chainconfig.MainnetParams

	tests := []struct {
		blockNumber uint64
		want        uint64
	}{
		{0, 50 * 100_000_000},
		{209_999, 50 * 100_000_000},
		{210_000, 25 * 100_000_000},
		{420_000, 1_250_000_000},
		{210_000 * 64, 0},
	}
	for _, test := range tests {
		got := CalcBlockSubsidy(test.blockNumber, params)
		if got != test.want {
			t.Errorf("CalcBlockSubsidy(%d): got %d, want %d",
				test.blockNumber, got, test.want)
		}
	}

	flat := chainconfig.SimnetParams
	flat.SubsidyHalvingInterval = 0
	if got := CalcBlockSubsidy(1_000_000, &flat); got != flat.BaseSubsidy {
		t.Errorf("CalcBlockSubsidy with no halving: got %d, want %d", got, flat.BaseSubsidy)
	}
}
