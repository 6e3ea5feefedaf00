package services

import "xmlrpc-cms/pkg/models"

// ReconcileCategories works around the MovableType three-call edit dance:
// clients edit once without categories (publish=false), call
// mt.setPostCategories, then edit again without categories (publish=true).
// That final publishing edit must not wipe the categories set in between,
// so when the payload omits them, the flag is up and the stored entry has
// some, the stored ones are copied into the payload. Must run before
// PostToEntry.
func ReconcileCategories(post *models.WirePost, publish bool, stored map[string]any) {
	if len(post.Categories) > 0 || !publish {
		return
	}
	if cats, ok := stored["categories"].([]string); ok && len(cats) > 0 {
		post.Categories = cats
	}
}
