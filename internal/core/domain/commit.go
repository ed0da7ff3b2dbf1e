package domain

import "time"

// TipRef is the sentinel revision name for the most recently built commit on
// the tracked branch. It is resolved by the tip alias, never by the mirror.
const TipRef = "tip"

// ShortHashLen is the number of hex digits shown for abbreviated commit IDs.
const ShortHashLen = 12

// CommitID is a canonical full-length commit hash from the mirrored history.
// Every cache key is a CommitID; symbolic refs and short hashes are resolved
// to one before any cache lookup.
type CommitID string

// String returns the full hex form of the identifier.
func (id CommitID) String() string {
	return string(id)
}

// Short returns the abbreviated form used in listings and log output.
func (id CommitID) Short() string {
	if len(id) <= ShortHashLen {
		return string(id)
	}
	return string(id[:ShortHashLen])
}

// Summary describes one cached build for listing purposes.
type Summary struct {
	ID      CommitID
	Time    time.Time
	Subject string
}
