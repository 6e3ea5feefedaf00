package services

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"xmlrpc-cms/pkg/config"
	"xmlrpc-cms/pkg/models"
)

// Filename markers for non-published entries: one underscore parks a draft,
// two hide the entry entirely. A published entry carries no marker.
const (
	draftMarker  = "_"
	hiddenMarker = "__"
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify derives the file-name slug from a title: decompose accents, drop
// combining marks, lowercase, turn everything non-alphanumeric into hyphens
// and collapse the runs. Deterministic for a given title.
func Slugify(title string) string {
	decompose := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ := transform.String(decompose, title)

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatedHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SequenceSource hands out the next ordinal for number-ordered folders.
type SequenceSource interface {
	Next(folder string) (int, error)
}

// OrderingPrefix builds the filename prefix for a folder's ordering scheme:
// the current date for date folders (with time of day when configured), the
// next free integer for number folders, nothing otherwise.
func OrderingPrefix(entryType, folder string, now time.Time, seq SequenceSource) (string, error) {
	switch entryType {
	case "date":
		if config.EntryTimestamps {
			return now.Format("2006-01-02-1504-"), nil
		}
		return now.Format("2006-01-02-"), nil
	case "number":
		n, err := seq.Next(folder)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n) + "-", nil
	default:
		return "", nil
	}
}

// StatusPrefix maps an entry status to its filename marker.
func StatusPrefix(status models.Status) string {
	switch status {
	case models.StatusDraft:
		return draftMarker
	case models.StatusHidden:
		return hiddenMarker
	default:
		return ""
	}
}

// StripStatusPrefix removes any status marker from a file base name,
// leaving ordering prefix and slug untouched.
func StripStatusPrefix(name string) string {
	return strings.TrimLeft(name, "_")
}

// BuildFilename assembles statusPrefix + orderingPrefix + slug plus the
// configured content extension. No collision check happens here; callers
// accept last-write-wins on equal names.
func BuildFilename(title, orderingPrefix string, status models.Status) string {
	return StatusPrefix(status) + orderingPrefix + Slugify(title) + "." + config.ContentExtension
}

// ChangeStatusPath computes where a file moves when its status changes:
// same directory, same ordering prefix and slug, new marker.
func ChangeStatusPath(path string, status models.Status) string {
	dir := filepath.Dir(path)
	base := StripStatusPrefix(filepath.Base(path))
	return filepath.Join(dir, StatusPrefix(status)+base)
}
