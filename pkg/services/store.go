package services

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"xmlrpc-cms/pkg/config"
)

var (
	datePrefixRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:-(\d{4}))?-(.+)$`)
	numberPrefixRe = regexp.MustCompile(`^(\d+)-(.+)$`)
)

// entryName is the decomposition of a content file's base name into the
// storage conventions: status markers, ordering prefix, slug.
type entryName struct {
	isDraft     bool
	isHidden    bool
	orderPrefix string
	slug        string
	date        time.Time
	hasDate     bool
	isEntry     bool
}

func parseEntryName(base string) entryName {
	var n entryName

	stripped := StripStatusPrefix(base)
	markers := len(base) - len(stripped)
	n.isDraft = markers == 1
	n.isHidden = markers >= 2
	n.slug = stripped

	if m := datePrefixRe.FindStringSubmatch(stripped); m != nil {
		layout, stamp := "2006-01-02", m[1]
		if m[2] != "" {
			layout, stamp = "2006-01-02-1504", m[1]+"-"+m[2]
		}
		if d, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			n.orderPrefix = stripped[:len(stripped)-len(m[3])]
			n.slug = m[3]
			n.date = d
			n.hasDate = true
			n.isEntry = true
		}
		return n
	}

	if m := numberPrefixRe.FindStringSubmatch(stripped); m != nil {
		n.orderPrefix = m[1] + "-"
		n.slug = m[2]
		n.isEntry = true
	}
	return n
}

// ContentStore reads entries straight off the content tree. It holds no
// per-request state, so one instance serves all concurrent calls.
type ContentStore struct {
	root string
	log  *zap.Logger
}

func NewContentStore(root string, log *zap.Logger) *ContentStore {
	return &ContentStore{root: root, log: log}
}

// FolderPath resolves a client-supplied folder against the content root,
// rejecting traversal attempts.
func (s *ContentStore) FolderPath(folder string) (string, error) {
	clean := path.Clean("/" + folder)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// Get finds the entry whose cleaned base name (status markers and ordering
// prefix stripped) equals slug and returns its raw content map.
func (s *ContentStore) Get(folder, slug string) (map[string]any, error) {
	dir, err := s.FolderPath(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s#%s", ErrNotFound, folder, slug)
	}

	ext := "." + config.ContentExtension
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ext) {
			continue
		}
		name := parseEntryName(strings.TrimSuffix(de.Name(), ext))
		if name.slug != slug {
			continue
		}
		return s.loadContent(filepath.Join(dir, de.Name()), folder, name)
	}
	return nil, fmt.Errorf("%w: %s#%s", ErrNotFound, folder, slug)
}

// QueryByFolder returns the folder's entry-typed content (files carrying an
// ordering prefix), newest first.
func (s *ContentStore) QueryByFolder(folder string) ([]map[string]any, error) {
	dir, err := s.FolderPath(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", folder, err)
	}

	ext := "." + config.ContentExtension
	var out []map[string]any
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ext) {
			continue
		}
		name := parseEntryName(strings.TrimSuffix(de.Name(), ext))
		if !name.isEntry {
			continue
		}
		raw, err := s.loadContent(filepath.Join(dir, de.Name()), folder, name)
		if err != nil {
			s.log.Warn("skipping unreadable entry", zap.String("file", de.Name()), zap.Error(err))
			continue
		}
		out = append(out, raw)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := out[i]["datestamp"].(time.Time)
		tj, _ := out[j]["datestamp"].(time.Time)
		return ti.After(tj)
	})
	return out, nil
}

// Taxonomies collects the distinct values of one taxonomy kind
// ("categories" or "tags") across the whole content tree, sorted.
func (s *ContentStore) Taxonomies(kind string) ([]string, error) {
	seen := make(map[string]struct{})
	ext := "." + config.ContentExtension

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		fm, _, _, err := ParseFrontMatter(content)
		if err != nil {
			return nil
		}
		for _, val := range stringList(fm[kind]) {
			seen[val] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content tree: %w", err)
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// Folder describes one top-level content folder.
type Folder struct {
	Name  string
	Title string
	URL   string
}

// TopFolders lists the content root's first-level directories, skipping
// internal ones (leading underscore).
func (s *ContentStore) TopFolders() ([]Folder, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading content root: %w", err)
	}

	titler := cases.Title(language.English)
	var out []Folder
	for _, de := range entries {
		if !de.IsDir() || strings.HasPrefix(de.Name(), "_") || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		out = append(out, Folder{
			Name:  de.Name(),
			Title: titler.String(strings.ReplaceAll(de.Name(), "-", " ")),
			URL:   "/" + de.Name(),
		})
	}
	return out, nil
}

// EntryType reports a folder's ordering scheme: "date", "number" or "".
// A fields.yaml with a type key decides; otherwise existing filenames do.
func (s *ContentStore) EntryType(folder string) string {
	dir, err := s.FolderPath(folder)
	if err != nil {
		return ""
	}

	if raw, err := os.ReadFile(filepath.Join(dir, "fields.yaml")); err == nil {
		var fields struct {
			Type string `yaml:"type"`
		}
		if yaml.Unmarshal(raw, &fields) == nil && fields.Type != "" {
			return fields.Type
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	ext := "." + config.ContentExtension
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ext) {
			continue
		}
		name := parseEntryName(strings.TrimSuffix(de.Name(), ext))
		if !name.isEntry {
			continue
		}
		if name.hasDate {
			return "date"
		}
		return "number"
	}
	return ""
}

// Next implements SequenceSource: one past the highest numeric prefix in
// the folder, starting at 1.
func (s *ContentStore) Next(folder string) (int, error) {
	dir, err := s.FolderPath(folder)
	if err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("reading folder %s: %w", folder, err)
	}

	ext := "." + config.ContentExtension
	max := 0
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ext) {
			continue
		}
		base := StripStatusPrefix(strings.TrimSuffix(de.Name(), ext))
		if m := numberPrefixRe.FindStringSubmatch(base); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}
	return max + 1, nil
}

func (s *ContentStore) loadContent(p, folder string, name entryName) (map[string]any, error) {
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		// body-only files still count as content
		fm, body = map[string]any{}, strings.TrimSpace(string(content))
	}

	datestamp := name.date
	if !name.hasDate {
		if info, err := os.Stat(p); err == nil {
			datestamp = info.ModTime()
		}
	}

	folder = strings.Trim(path.Clean("/"+folder), "/")
	url := "/" + path.Join(folder, name.slug)

	raw := map[string]any{
		"title":       stringField(fm, "title"),
		"author":      stringField(fm, "author"),
		"link":        stringField(fm, "link"),
		"content_raw": body,
		"slug":        name.slug,
		"url":         url,
		"permalink":   config.SiteURL + url,
		"datestamp":   datestamp,
		"_folder":     folder,
		"_is_draft":   name.isDraft,
		"_is_hidden":  name.isHidden,
		"_path":       p,
	}
	if raw["title"] == "" {
		raw["title"] = name.slug
	}
	if cats := stringList(fm["categories"]); len(cats) > 0 {
		raw["categories"] = cats
	}
	if tags := stringList(fm["tags"]); len(tags) > 0 {
		raw["tags"] = tags
	}
	return raw, nil
}
