package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xmlrpc-cms/pkg/models"
	"xmlrpc-cms/pkg/services"
	"xmlrpc-cms/pkg/xmlrpc"
)

// NewRPCServer builds the method table. Several names alias the same
// operation because the MetaWeblog, Blogger and MovableType dialects grew
// apart historically and desktop clients mix them freely.
func NewRPCServer(a *services.Adapter, log *zap.Logger) *xmlrpc.Server {
	s := xmlrpc.NewServer(log)

	s.Register("metaWeblog.getPost", func(params []xmlrpc.Value) (any, error) {
		post, err := a.GetPost(str(params, 0), str(params, 1), str(params, 2))
		if err != nil {
			return nil, fault(err)
		}
		return postResult(post), nil
	})

	s.Register("metaWeblog.getRecentPosts", func(params []xmlrpc.Value) (any, error) {
		posts, err := a.GetRecentPosts(str(params, 0), str(params, 1), str(params, 2), intAt(params, 3))
		if err != nil {
			return nil, fault(err)
		}
		out := make([]any, 0, len(posts))
		for _, p := range posts {
			out = append(out, postResult(p))
		}
		return out, nil
	})

	s.Register("metaWeblog.newPost", func(params []xmlrpc.Value) (any, error) {
		post := decodeWirePost(at(params, 3))
		postid, err := a.NewPost(str(params, 0), str(params, 1), str(params, 2), post, boolAt(params, 4))
		if err != nil {
			return nil, fault(err)
		}
		return postid, nil
	})

	s.Register("metaWeblog.editPost", func(params []xmlrpc.Value) (any, error) {
		post := decodeWirePost(at(params, 3))
		ok, err := a.EditPost(str(params, 0), str(params, 1), str(params, 2), post, boolAt(params, 4))
		if err != nil {
			return nil, fault(err)
		}
		return ok, nil
	})

	// both deletePost forms carry a leading appkey argument
	deletePost := func(params []xmlrpc.Value) (any, error) {
		ok, err := a.DeletePost(str(params, 1), str(params, 2), str(params, 3))
		if err != nil {
			return nil, fault(err)
		}
		return ok, nil
	}
	s.Register("metaWeblog.deletePost", deletePost)
	s.Register("blogger.deletePost", deletePost)

	getCategories := func(params []xmlrpc.Value) (any, error) {
		categories, err := a.GetCategories(str(params, 1), str(params, 2))
		if err != nil {
			return nil, fault(err)
		}
		out := make([]any, 0, len(categories))
		for _, c := range categories {
			out = append(out, map[string]any{
				"categoryId":   c.ID,
				"categoryName": c.Name,
			})
		}
		return out, nil
	}
	s.Register("metaWeblog.getCategories", getCategories)
	s.Register("mt.getCategoryList", getCategories)

	s.Register("mt.getPostCategories", func(params []xmlrpc.Value) (any, error) {
		categories, err := a.GetPostCategories(str(params, 0), str(params, 1), str(params, 2))
		if err != nil {
			return nil, fault(err)
		}
		out := make([]any, 0, len(categories))
		for _, c := range categories {
			out = append(out, map[string]any{
				"categoryId":   c.ID,
				"categoryName": c.Name,
				"isPrimary":    false,
			})
		}
		return out, nil
	})

	s.Register("mt.setPostCategories", func(params []xmlrpc.Value) (any, error) {
		ok, err := a.SetPostCategories(str(params, 0), str(params, 1), str(params, 2),
			decodeCategoryList(at(params, 3)))
		if err != nil {
			return nil, fault(err)
		}
		return ok, nil
	})

	s.Register("mt.publishPost", func(params []xmlrpc.Value) (any, error) {
		ok, err := a.PublishPost(str(params, 0), str(params, 1), str(params, 2))
		if err != nil {
			return nil, fault(err)
		}
		return ok, nil
	})

	s.Register("mt.supportedTextFilters", func(params []xmlrpc.Value) (any, error) {
		return []any{}, nil
	})

	s.Register("metaWeblog.newMediaObject", func(params []xmlrpc.Value) (any, error) {
		media := at(params, 3)
		name := ""
		if m, ok := media.Member("name"); ok {
			name = m.AsString()
		}
		var bits []byte
		if m, ok := media.Member("bits"); ok && m.Kind == xmlrpc.KindBase64 {
			bits = m.Bytes
		}
		obj, err := a.NewMediaObject(str(params, 1), str(params, 2), name, bits)
		if err != nil {
			return nil, fault(err)
		}
		return map[string]any{
			"file": obj.File,
			"url":  obj.URL,
			"type": obj.Type,
		}, nil
	})

	usersBlogs := func(user, pass string) (any, error) {
		blogs, err := a.GetUsersBlogs(user, pass)
		if err != nil {
			return nil, fault(err)
		}
		out := make([]any, 0, len(blogs))
		for _, b := range blogs {
			out = append(out, map[string]any{
				"blogid":   b.ID,
				"blogName": b.Name,
				"url":      b.URL,
				"xmlrpc":   b.XMLRPC,
				"isAdmin":  true,
			})
		}
		return out, nil
	}
	s.Register("wp.getUsersBlogs", func(params []xmlrpc.Value) (any, error) {
		return usersBlogs(str(params, 0), str(params, 1))
	})
	s.Register("blogger.getUsersBlogs", func(params []xmlrpc.Value) (any, error) {
		return usersBlogs(str(params, 1), str(params, 2))
	})

	return s
}

// XMLRPC serves the endpoint: the whole request body is one method call,
// the response is always 200 with any failure encoded as a fault.
func XMLRPC(s *xmlrpc.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Data(http.StatusOK, "text/xml; charset=utf-8",
				xmlrpc.MarshalFault(xmlrpc.NewFault(xmlrpc.FaultParse, "unreadable request body")))
			return
		}
		c.Data(http.StatusOK, "text/xml; charset=utf-8", s.HandleRequest(body))
	}
}

// fault maps domain errors onto protocol fault codes, carrying the error
// text verbatim.
func fault(err error) error {
	switch {
	case errors.Is(err, services.ErrAuth):
		return xmlrpc.NewFault(xmlrpc.FaultAuth, "%s", err.Error())
	case errors.Is(err, services.ErrMalformedID), errors.Is(err, services.ErrInvalidPost):
		return xmlrpc.NewFault(xmlrpc.FaultBadRequest, "%s", err.Error())
	case errors.Is(err, services.ErrNotFound):
		return xmlrpc.NewFault(xmlrpc.FaultNotFound, "%s", err.Error())
	default:
		return xmlrpc.AsFault(err)
	}
}

func at(params []xmlrpc.Value, i int) xmlrpc.Value {
	if i < len(params) {
		return params[i]
	}
	return xmlrpc.Value{}
}

func str(params []xmlrpc.Value, i int) string {
	return at(params, i).AsString()
}

func intAt(params []xmlrpc.Value, i int) int {
	return at(params, i).AsInt()
}

func boolAt(params []xmlrpc.Value, i int) bool {
	return at(params, i).AsBool()
}

func decodeWirePost(v xmlrpc.Value) *models.WirePost {
	post := &models.WirePost{}
	if v.Kind != xmlrpc.KindStruct {
		return post
	}

	if m, ok := v.Member("title"); ok {
		post.Title = m.AsString()
	}
	if m, ok := v.Member("description"); ok {
		s := m.AsString()
		post.Description = &s
	}
	if m, ok := v.Member("link"); ok {
		post.Link = m.AsString()
	}
	if m, ok := v.Member("categories"); ok {
		post.Categories = m.AsStrings()
	}
	if m, ok := v.Member("tags"); ok {
		post.Tags = m.AsStrings()
	}
	if m, ok := v.Member("dateCreated"); ok && m.Kind == xmlrpc.KindTime {
		post.DateCreated = m.Time
	}
	if m, ok := v.Member("post_status"); ok {
		s := m.AsString()
		post.PostStatus = &s
	}
	if m, ok := v.Member("custom_fields"); ok && m.Kind == xmlrpc.KindArray {
		for _, item := range m.List {
			key, _ := item.Member("key")
			value, _ := item.Member("value")
			post.CustomFields = append(post.CustomFields, models.CustomField{
				Key:   key.AsString(),
				Value: value.AsString(),
			})
		}
	}
	return post
}

// decodeCategoryList accepts both shapes clients send: an array of structs
// with categoryId (per the MovableType spec) or a bare array of strings.
func decodeCategoryList(v xmlrpc.Value) []string {
	if v.Kind != xmlrpc.KindArray {
		return nil
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind == xmlrpc.KindStruct {
			if id, ok := item.Member("categoryId"); ok {
				out = append(out, id.AsString())
				continue
			}
			if name, ok := item.Member("categoryName"); ok {
				out = append(out, name.AsString())
			}
			continue
		}
		out = append(out, item.AsString())
	}
	return out
}

func postResult(p models.WirePost) map[string]any {
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	status := ""
	if p.PostStatus != nil {
		status = *p.PostStatus
	}

	categories := make([]any, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, c)
	}

	customFields := make([]any, 0, len(p.CustomFields))
	for _, f := range p.CustomFields {
		customFields = append(customFields, map[string]any{
			"key":   f.Key,
			"value": f.Value,
		})
	}

	return map[string]any{
		"postid":        p.PostID,
		"title":         p.Title,
		"description":   description,
		"link":          p.Link,
		"permaLink":     p.PermaLink,
		"categories":    categories,
		"dateCreated":   p.DateCreated,
		"post_status":   status,
		"custom_fields": customFields,
	}
}
