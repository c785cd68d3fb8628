package sequences

import "errors"

// Sentinel errors returned by the package. Callers match them with
// errors.Is; most are returned wrapped with the offending string or path.
var (
	// ErrNotSequence reports a source string with no recognizable numeric
	// slot under the requested grammar.
	ErrNotSequence = errors.New("string does not match the sequence grammar")

	// ErrFormatKeyMismatch reports a format-flavor slot whose key differs
	// from the sequence's key (for example "{frame:04d}" parsed with the
	// default "item" key).
	ErrFormatKeyMismatch = errors.New("format placeholder key does not match")

	// ErrImageExtension reports a file extension outside the image
	// whitelist on an image sequence.
	ErrImageExtension = errors.New("not a recognized image extension")

	// ErrNotPartOfSequence reports a candidate string that fails the
	// membership test for a sequence.
	ErrNotPartOfSequence = errors.New("not part of the sequence")

	// ErrUnknownNumber reports an item number with no entry in the index.
	ErrUnknownNumber = errors.New("no item with that number")

	// ErrNonContiguous reports a rename attempted on a gapped sequence
	// without IgnoreMissing.
	ErrNonContiguous = errors.New("sequence has missing items")

	// ErrDestinationExists reports a rename destination that already
	// exists and is not vacated by an earlier step of the same plan.
	ErrDestinationExists = errors.New("rename destination already exists")

	// ErrScopeUnavailable reports a containing directory or depot scope
	// that cannot be reached or listed.
	ErrScopeUnavailable = errors.New("containing scope is unavailable")

	// ErrNegativeNumber reports a negative item number. Negative numbers
	// are reserved and never valid in any slot.
	ErrNegativeNumber = errors.New("negative item numbers are not supported")
)
