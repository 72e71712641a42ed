package ledger

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrSameCompetitor = errors.New("match participants must differ")
	ErrInvalidOutcome = errors.New("unknown outcome label")
	ErrDuplicateMatch = errors.New("match id already ledgered")
)
