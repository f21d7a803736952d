package blockvalidator

import (
	"time"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/util/difficulty"
	"github.com/pkg/errors"
)

// CheckHeader runs the structural header rules: timestamp bounds and
// proof-of-work target format, plus the proof-of-work hash itself on
// networks that enforce it. now is the single captured instant for the
// whole verification call.
func (v *blockValidator) CheckHeader(header *externalapi.IndexedBlockHeader, now time.Time) error {
	maxTimestamp := now.Add(v.params.TimestampDeviation).Unix()
	if header.Header.Timestamp > maxTimestamp {
		return errors.Wrapf(ruleerrors.ErrTimestampTooFarInFuture,
			"block %s timestamp %d is later than the allowed maximum of %d",
			header.Hash, header.Header.Timestamp, maxTimestamp)
	}

	target := difficulty.CompactToBig(header.Header.Bits)
	if target.Sign() <= 0 {
		return errors.Wrapf(ruleerrors.ErrNegativeTarget,
			"block %s target %064x is not positive", header.Hash, target)
	}
	if target.Cmp(v.params.PowLimit) > 0 {
		return errors.Wrapf(ruleerrors.ErrTargetTooHigh,
			"block %s target %064x is higher than the limit %064x",
			header.Hash, target, v.params.PowLimit)
	}

	if !v.params.SkipProofOfWork {
		hashNum := difficulty.HashToBig(&header.Hash)
		if hashNum.Cmp(target) > 0 {
			return errors.Wrapf(ruleerrors.ErrInvalidPoW,
				"block %s hash is higher than its target %064x", header.Hash, target)
		}
	}
	return nil
}
