package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlrpc-cms/pkg/config"
	"xmlrpc-cms/pkg/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"with special characters", "Hello, World!", "hello-world"},
		{"with numbers", "Page 123", "page-123"},
		{"with accents", "Café résumé", "cafe-resume"},
		{"with multiple spaces", "Hello   World", "hello-world"},
		{"with hyphens", "Hello - World", "hello-world"},
		{"leading and trailing spaces", "  Hello World  ", "hello-world"},
		{"all special characters", "!@#$%^&*()", ""},
		{"german umlauts", "Über München", "uber-munchen"},
		{"empty string", "", ""},
		{"mixed case", "HeLLo WoRLd", "hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
			// deterministic for the same title
			assert.Equal(t, Slugify(tt.input), Slugify(tt.input))
		})
	}
}

type fixedSeq int

func (s fixedSeq) Next(folder string) (int, error) { return int(s), nil }

func TestOrderingPrefix(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

	prefix, err := OrderingPrefix("date", "blog", now, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15-", prefix)

	config.EntryTimestamps = true
	defer func() { config.EntryTimestamps = false }()
	prefix, err = OrderingPrefix("date", "blog", now, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15-0930-", prefix)

	prefix, err = OrderingPrefix("number", "notes", now, fixedSeq(7))
	require.NoError(t, err)
	assert.Equal(t, "7-", prefix)

	prefix, err = OrderingPrefix("", "pages", now, nil)
	require.NoError(t, err)
	assert.Equal(t, "", prefix)
}

func TestStatusPrefix(t *testing.T) {
	assert.Equal(t, "", StatusPrefix(models.StatusPublish))
	assert.Equal(t, "_", StatusPrefix(models.StatusDraft))
	assert.Equal(t, "__", StatusPrefix(models.StatusHidden))
}

func TestStripStatusPrefix(t *testing.T) {
	assert.Equal(t, "hello", StripStatusPrefix("hello"))
	assert.Equal(t, "hello", StripStatusPrefix("_hello"))
	assert.Equal(t, "hello", StripStatusPrefix("__hello"))
	assert.Equal(t, "2024-01-01-hello", StripStatusPrefix("_2024-01-01-hello"))
}

func TestBuildFilename(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		prefix string
		status models.Status
		want   string
	}{
		{"published plain", "Hello World", "", models.StatusPublish, "hello-world.md"},
		{"published dated", "Hello World", "2024-03-15-", models.StatusPublish, "2024-03-15-hello-world.md"},
		{"draft dated", "Hello World", "2024-03-15-", models.StatusDraft, "_2024-03-15-hello-world.md"},
		{"hidden numbered", "Hello World", "3-", models.StatusHidden, "__3-hello-world.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilename(tt.title, tt.prefix, tt.status))
		})
	}
}

func TestChangeStatusPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status models.Status
		want   string
	}{
		{"draft to publish", "content/blog/_2024-03-15-hello.md", models.StatusPublish, "content/blog/2024-03-15-hello.md"},
		{"publish to draft", "content/blog/2024-03-15-hello.md", models.StatusDraft, "content/blog/_2024-03-15-hello.md"},
		{"publish to hidden", "content/blog/hello.md", models.StatusHidden, "content/blog/__hello.md"},
		{"hidden to draft", "content/blog/__hello.md", models.StatusDraft, "content/blog/_hello.md"},
		{"no-op keeps name", "content/blog/hello.md", models.StatusPublish, "content/blog/hello.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangeStatusPath(tt.path, tt.status))
		})
	}
}
