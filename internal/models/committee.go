package models

// Officer is a committee entry weakly referencing a User. The reference must
// resolve at write time; stale references are tolerated on read.
type Officer struct {
	UserID   string
	Position string
	Image    string
}

type Committee struct {
	ID       string
	Name     string
	Officers []Officer
}

// LibraryEntry is a denormalized lookup list keyed by category, e.g. the
// "Committees" entry mirrors committee names for dropdowns. Kept in sync
// best-effort on committee writes.
type LibraryEntry struct {
	ID      string
	Content []string
}

// LibraryCommittees is the entry mirroring committee names.
const LibraryCommittees = "Committees"
