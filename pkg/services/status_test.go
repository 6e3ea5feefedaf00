package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xmlrpc-cms/pkg/models"
)

func TestStatusFromWire(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		publish bool
		want    models.Status
	}{
		{"publish flag wins over publish text", "publish", false, models.StatusDraft},
		{"publish flag wins over private", "private", false, models.StatusDraft},
		{"publish flag wins over garbage", "whatever", false, models.StatusDraft},
		{"pending is draft", "pending", true, models.StatusDraft},
		{"draft is draft", "draft", true, models.StatusDraft},
		{"auto-draft is draft", "auto-draft", true, models.StatusDraft},
		{"future is draft", "future", true, models.StatusDraft},
		{"private is hidden", "private", true, models.StatusHidden},
		{"publish is publish", "publish", true, models.StatusPublish},
		{"new is publish", "new", true, models.StatusPublish},
		{"inherit is publish", "inherit", true, models.StatusPublish},
		{"trash is publish", "trash", true, models.StatusPublish},
		{"unknown value defaults to publish", "bogus", true, models.StatusPublish},
		{"empty defaults to publish", "", true, models.StatusPublish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromWire(tt.status, tt.publish))
		})
	}
}

func TestStatusToWire(t *testing.T) {
	tests := []struct {
		name     string
		isDraft  bool
		isHidden bool
		want     string
	}{
		{"neither flag", false, false, "publish"},
		{"draft", true, false, "draft"},
		{"hidden", false, true, "private"},
		{"draft wins over hidden", true, true, "draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusToWire(tt.isDraft, tt.isHidden))
		})
	}
}

func TestStatusChanged(t *testing.T) {
	assert.False(t, StatusChanged(models.StatusPublish, false, false))
	assert.False(t, StatusChanged(models.StatusDraft, true, false))
	assert.False(t, StatusChanged(models.StatusDraft, true, true))
	assert.True(t, StatusChanged(models.StatusPublish, true, false))
	assert.True(t, StatusChanged(models.StatusHidden, false, false))
	assert.True(t, StatusChanged(models.StatusDraft, false, true))
}
