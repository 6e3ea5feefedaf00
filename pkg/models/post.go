package models

import "time"

// WirePost is the post structure exchanged with MetaWeblog/Blogger/MovableType
// clients. It is built fresh per request and never persisted. Pointer and nil
// slice fields distinguish "client omitted this key" from a zero value.
type WirePost struct {
	PostID       string
	Title        string
	Description  *string
	Link         string
	PermaLink    string
	Categories   []string
	Tags         []string
	DateCreated  time.Time
	PostStatus   *string
	CustomFields []CustomField
}

// CustomField is one {key, value} pair from the wire payload's custom_fields
// list. The protocol has no native slot for author or canonical link, so both
// travel through here.
type CustomField struct {
	Key   string
	Value string
}

// Category is one taxonomy value surfaced to clients.
type Category struct {
	ID   string
	Name string
}

// Blog describes a top-level content folder presented as a pseudo-blog.
type Blog struct {
	ID     string
	Name   string
	URL    string
	XMLRPC string
}

// MediaObject is the result of a newMediaObject upload.
type MediaObject struct {
	File string
	URL  string
	Type string
}
