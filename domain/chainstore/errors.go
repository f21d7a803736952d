package chainstore

import (
	"github.com/pkg/errors"
)

// Store-contract errors. Verification passes these through unchanged;
// they are a distinct error kind from rule violations.
var (
	// ErrUnknownParent indicates a block's parent is not present in
	// the store. Blocks with unknown ancestry (orphans) cannot be
	// classified and must be rejected at the verification entry point.
	ErrUnknownParent = errors.New("unknown parent block")

	// ErrNotFound indicates the requested block or transaction is not
	// in the store.
	ErrNotFound = errors.New("not found in store")

	// ErrDuplicateBlock indicates an insert of a block that is already
	// stored.
	ErrDuplicateBlock = errors.New("block already stored")

	// ErrCannotCanonize indicates a canonize call for a block that
	// does not extend the current best chain tip.
	ErrCannotCanonize = errors.New("block does not extend the best chain tip")

	// ErrCorruptedStore indicates the persisted state failed to load
	// consistently. Continuing against a corrupted store risks acting
	// on a wrong chain view, so callers should treat this as fatal.
	ErrCorruptedStore = errors.New("corrupted chain store")
)
