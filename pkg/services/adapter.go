package services

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"xmlrpc-cms/pkg/config"
	"xmlrpc-cms/pkg/models"
)

// Adapter composes the mapping components with the content and file stores
// to implement the blog-protocol operations. It keeps no per-request state;
// each call builds its own Session after authenticating.
type Adapter struct {
	Store *ContentStore
	Files *FileStore
	Auth  *Authenticator
	Log   *zap.Logger
}

func NewAdapter(store *ContentStore, files *FileStore, auth *Authenticator, log *zap.Logger) *Adapter {
	return &Adapter{Store: store, Files: files, Auth: auth, Log: log}
}

// authenticate verifies credentials and snapshots the request-scoped
// configuration. It runs before any side effect of every operation.
func (a *Adapter) authenticate(username, password string) (*Session, error) {
	user, err := a.Auth.Verify(username, password)
	if err != nil {
		return nil, err
	}
	return &Session{
		Username:    user.Username,
		LinkField:   config.LinkCustomField,
		AuthorField: config.AuthorCustomField,
	}, nil
}

// GetPost returns one stored entry as a wire post.
func (a *Adapter) GetPost(postid, username, password string) (models.WirePost, error) {
	sess, err := a.authenticate(username, password)
	if err != nil {
		return models.WirePost{}, err
	}

	folder, slug, err := ParsePostID(postid)
	if err != nil {
		return models.WirePost{}, err
	}

	raw, err := a.Store.Get(folder, slug)
	if err != nil {
		return models.WirePost{}, err
	}
	return EntryToPost(raw, sess), nil
}

// GetRecentPosts lists a folder's entries newest first, truncated to limit
// when limit is positive.
func (a *Adapter) GetRecentPosts(folder, username, password string, limit int) ([]models.WirePost, error) {
	sess, err := a.authenticate(username, password)
	if err != nil {
		return nil, err
	}

	raws, err := a.Store.QueryByFolder(folder)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(raws) > limit {
		raws = raws[:limit]
	}

	posts := make([]models.WirePost, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, EntryToPost(raw, sess))
	}
	return posts, nil
}

// NewPost converts the payload, derives the file name from the folder's
// ordering scheme and the intended status, writes the file and returns the
// new post id. Name collisions are not detected; last write wins.
func (a *Adapter) NewPost(folder, username, password string, post *models.WirePost, publish bool) (string, error) {
	sess, err := a.authenticate(username, password)
	if err != nil {
		return "", err
	}
	if post.Title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidPost)
	}

	entry := PostToEntry(post, publish, sess)

	prefix, err := OrderingPrefix(a.Store.EntryType(folder), folder, time.Now(), a.Store)
	if err != nil {
		return "", err
	}

	dir, err := a.Store.FolderPath(folder)
	if err != nil {
		return "", err
	}
	filename := BuildFilename(entry.Title, prefix, entry.Status)

	if err := a.Files.Write(filepath.Join(dir, filename), frontMatter(entry), entry.Content); err != nil {
		return "", err
	}

	cleanFolder := strings.Trim(path.Clean("/"+folder), "/")
	return MakePostID(cleanFolder, Slugify(entry.Title)), nil
}

// EditPost overwrites an entry in place. Omitted description and (via the
// reconciler) omitted categories survive from the stored entry; when the
// intended status differs from the on-disk one the file is renamed to carry
// the right marker.
func (a *Adapter) EditPost(postid, username, password string, post *models.WirePost, publish bool) (bool, error) {
	sess, err := a.authenticate(username, password)
	if err != nil {
		return false, err
	}

	folder, slug, err := ParsePostID(postid)
	if err != nil {
		return false, err
	}

	stored, err := a.Store.Get(folder, slug)
	if err != nil {
		return false, err
	}

	ReconcileCategories(post, publish, stored)
	entry := PostToEntry(post, publish, sess)
	if post.Description == nil {
		content, _ := stored["content_raw"].(string)
		entry.Content = content
	}

	storedPath, _ := stored["_path"].(string)
	if err := a.Files.Write(storedPath, frontMatter(entry), entry.Content); err != nil {
		return false, err
	}

	isDraft, _ := stored["_is_draft"].(bool)
	isHidden, _ := stored["_is_hidden"].(bool)
	if StatusChanged(entry.Status, isDraft, isHidden) {
		if err := a.Files.Rename(storedPath, ChangeStatusPath(storedPath, entry.Status)); err != nil {
			return false, err
		}
	}
	return true, nil
}

// PublishPost forces an entry to published status by renaming away any
// draft or hidden marker. Content is untouched.
func (a *Adapter) PublishPost(postid, username, password string) (bool, error) {
	if _, err := a.authenticate(username, password); err != nil {
		return false, err
	}

	folder, slug, err := ParsePostID(postid)
	if err != nil {
		return false, err
	}

	stored, err := a.Store.Get(folder, slug)
	if err != nil {
		return false, err
	}

	isDraft, _ := stored["_is_draft"].(bool)
	isHidden, _ := stored["_is_hidden"].(bool)
	if !StatusChanged(models.StatusPublish, isDraft, isHidden) {
		return true, nil
	}

	storedPath, _ := stored["_path"].(string)
	if err := a.Files.Rename(storedPath, ChangeStatusPath(storedPath, models.StatusPublish)); err != nil {
		return false, err
	}
	return true, nil
}

// DeletePost removes the entry's file. Storage failures (including a file
// that is already gone) surface as faults rather than crashes.
func (a *Adapter) DeletePost(postid, username, password string) (bool, error) {
	if _, err := a.authenticate(username, password); err != nil {
		return false, err
	}

	folder, slug, err := ParsePostID(postid)
	if err != nil {
		return false, err
	}

	target := ""
	if stored, err := a.Store.Get(folder, slug); err == nil {
		target, _ = stored["_path"].(string)
	} else {
		dir, err := a.Store.FolderPath(folder)
		if err != nil {
			return false, err
		}
		target = filepath.Join(dir, slug+"."+config.ContentExtension)
	}

	if err := a.Files.Delete(target); err != nil {
		return false, err
	}
	return true, nil
}

// GetCategories lists every known category taxonomy value.
func (a *Adapter) GetCategories(username, password string) ([]models.Category, error) {
	if _, err := a.authenticate(username, password); err != nil {
		return nil, err
	}

	values, err := a.Store.Taxonomies("categories")
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(values))
	for _, v := range values {
		categories = append(categories, models.Category{ID: v, Name: v})
	}
	return categories, nil
}

// GetPostCategories reads one entry's categories in stored order.
func (a *Adapter) GetPostCategories(postid, username, password string) ([]models.Category, error) {
	if _, err := a.authenticate(username, password); err != nil {
		return nil, err
	}

	folder, slug, err := ParsePostID(postid)
	if err != nil {
		return nil, err
	}

	raw, err := a.Store.Get(folder, slug)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if cats, ok := raw["categories"].([]string); ok {
		for _, c := range cats {
			categories = append(categories, models.Category{ID: c, Name: c})
		}
	}
	return categories, nil
}

// SetPostCategories replaces an entry's categories wholesale, preserving
// the given order. Unlike editPost there is no preserve-on-omit here.
func (a *Adapter) SetPostCategories(postid, username, password string, categories []string) (bool, error) {
	sess, err := a.authenticate(username, password)
	if err != nil {
		return false, err
	}

	folder, slug, err := ParsePostID(postid)
	if err != nil {
		return false, err
	}

	stored, err := a.Store.Get(folder, slug)
	if err != nil {
		return false, err
	}

	entry := ContentToEntry(stored, sess)
	entry.Categories = append([]string(nil), categories...)

	storedPath, _ := stored["_path"].(string)
	if err := a.Files.Write(storedPath, frontMatter(entry), entry.Content); err != nil {
		return false, err
	}
	return true, nil
}

// GetUsersBlogs presents the top-level content folders as blogs.
func (a *Adapter) GetUsersBlogs(username, password string) ([]models.Blog, error) {
	if _, err := a.authenticate(username, password); err != nil {
		return nil, err
	}

	folders, err := a.Store.TopFolders()
	if err != nil {
		return nil, err
	}

	blogs := make([]models.Blog, 0, len(folders))
	for _, f := range folders {
		blogs = append(blogs, models.Blog{
			ID:     strings.ToLower(f.Name),
			Name:   f.Title,
			URL:    config.SiteURL + f.URL,
			XMLRPC: config.EndpointURL(),
		})
	}
	return blogs, nil
}

// NewMediaObject stores an uploaded asset, or just registers it when the
// client sent no bytes.
func (a *Adapter) NewMediaObject(username, password, name string, bits []byte) (*models.MediaObject, error) {
	if _, err := a.authenticate(username, password); err != nil {
		return nil, err
	}
	return SaveMediaObject(name, bits)
}
