package services

import (
	"time"

	"xmlrpc-cms/pkg/models"
)

// Session carries the per-request configuration: the authenticated user and
// the custom-field names in effect for this call. Concurrent requests each
// get their own, so differing configurations never interfere.
type Session struct {
	Username    string
	LinkField   string
	AuthorField string
}

// EntryToPost builds the wire post structure from a stored entry's raw
// content map. The custom_fields list always holds exactly two entries:
// the canonical-link field (value may be empty) and the author field, with
// the session user standing in for a missing author.
func EntryToPost(raw map[string]any, sess *Session) models.WirePost {
	author, _ := raw["author"].(string)
	if author == "" {
		author = sess.Username
	}

	isDraft, _ := raw["_is_draft"].(bool)
	isHidden, _ := raw["_is_hidden"].(bool)
	status := StatusToWire(isDraft, isHidden)

	folder, _ := raw["_folder"].(string)
	slug, _ := raw["slug"].(string)
	title, _ := raw["title"].(string)
	content, _ := raw["content_raw"].(string)
	url, _ := raw["url"].(string)
	permalink, _ := raw["permalink"].(string)
	link, _ := raw["link"].(string)
	datestamp, _ := raw["datestamp"].(time.Time)

	var categories []string
	if cats, ok := raw["categories"].([]string); ok {
		categories = cats
	}

	return models.WirePost{
		PostID:      MakePostID(folder, slug),
		Title:       title,
		Description: &content,
		Link:        url,
		PermaLink:   permalink,
		Categories:  categories,
		DateCreated: datestamp,
		PostStatus:  &status,
		CustomFields: []models.CustomField{
			{Key: sess.LinkField, Value: link},
			{Key: sess.AuthorField, Value: author},
		},
	}
}

// PostToEntry builds the canonical entry from an inbound wire post.
// Omitted description, categories and tags stay absent rather than being
// zeroed; an empty categories list collapses to absent as well, a protocol
// ambiguity kept on purpose.
func PostToEntry(post *models.WirePost, publish bool, sess *Session) *models.Entry {
	entry := &models.Entry{Title: post.Title}

	if post.Description != nil {
		entry.Content = *post.Description
	}
	if len(post.Categories) > 0 {
		entry.Categories = post.Categories
	}
	if len(post.Tags) > 0 {
		entry.Tags = post.Tags
	}

	wireStatus := ""
	if post.PostStatus != nil {
		wireStatus = *post.PostStatus
	}
	entry.Status = StatusFromWire(wireStatus, publish)

	if len(post.CustomFields) > 0 {
		for _, field := range post.CustomFields {
			switch field.Key {
			case sess.LinkField:
				entry.Link = field.Value
			case sess.AuthorField:
				entry.Author = field.Value
			}
		}
		if entry.Author == "" {
			entry.Author = sess.Username
		}
	} else {
		// no custom fields at all still needs an author
		entry.Author = sess.Username
	}

	return entry
}

// ContentToEntry converts an already-loaded stored content map into the
// canonical entry. Used to seed category reconciliation before an edit.
func ContentToEntry(raw map[string]any, sess *Session) *models.Entry {
	title, _ := raw["title"].(string)
	content, _ := raw["content_raw"].(string)
	author, _ := raw["author"].(string)
	link, _ := raw["link"].(string)
	isDraft, _ := raw["_is_draft"].(bool)
	isHidden, _ := raw["_is_hidden"].(bool)

	entry := &models.Entry{
		Title:   title,
		Content: content,
		Status:  StatusFromFlags(isDraft, isHidden),
		Author:  author,
		Link:    link,
	}
	if cats, ok := raw["categories"].([]string); ok && len(cats) > 0 {
		entry.Categories = cats
	}
	if tags, ok := raw["tags"].([]string); ok && len(tags) > 0 {
		entry.Tags = tags
	}
	if entry.Author == "" {
		entry.Author = sess.Username
	}
	return entry
}

// frontMatter lays out the entry fields written to a content file. The link
// is only present when set; everything else is always written so a file is
// self-describing.
func frontMatter(entry *models.Entry) map[string]any {
	categories := entry.Categories
	if categories == nil {
		categories = []string{}
	}
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}

	fm := map[string]any{
		"title":      entry.Title,
		"categories": categories,
		"tags":       tags,
		"author":     entry.Author,
	}
	if entry.Link != "" {
		fm["link"] = entry.Link
	}
	return fm
}
