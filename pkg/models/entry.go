package models

// Status is the canonical three-state entry status. Wire-level status
// strings are mapped to it on the way in and never stored raw.
type Status int

const (
	StatusPublish Status = iota
	StatusDraft
	StatusHidden
)

func (s Status) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusHidden:
		return "hidden"
	default:
		return "publish"
	}
}

// Entry is the CMS-side representation of a post. Categories and Tags use a
// nil slice to mean "absent" (do not touch the stored value on edit), which
// is distinct from an empty slice.
type Entry struct {
	Title      string
	Content    string
	Categories []string
	Tags       []string
	Status     Status
	Author     string
	Link       string
}
