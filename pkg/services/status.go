package services

import "xmlrpc-cms/pkg/models"

// StatusFromWire maps the loose wire-protocol status vocabulary onto the
// canonical entry status. The publish flag always wins: clients that send
// publish=false mean draft no matter what the status text claims.
func StatusFromWire(postStatus string, publish bool) models.Status {
	if !publish {
		return models.StatusDraft
	}
	switch postStatus {
	case "pending", "draft", "auto-draft", "future":
		return models.StatusDraft
	case "private":
		return models.StatusHidden
	default:
		// new, publish, inherit, trash and anything unrecognized
		return models.StatusPublish
	}
}

// StatusToWire derives the wire status string from the two stored flags.
// They are not mutually exclusive on disk; draft takes priority.
func StatusToWire(isDraft, isHidden bool) string {
	switch {
	case isDraft:
		return "draft"
	case isHidden:
		return "private"
	default:
		return "publish"
	}
}

// StatusFromFlags is the enum twin of StatusToWire.
func StatusFromFlags(isDraft, isHidden bool) models.Status {
	switch {
	case isDraft:
		return models.StatusDraft
	case isHidden:
		return models.StatusHidden
	default:
		return models.StatusPublish
	}
}

// StatusChanged reports whether an edit's intended status differs from the
// status currently on disk, i.e. whether the file needs a marker rename.
func StatusChanged(next models.Status, isDraft, isHidden bool) bool {
	return next != StatusFromFlags(isDraft, isHidden)
}
