package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// BlogsAPI wraps the blog endpoints.
type BlogsAPI struct {
	client *Client
}

// Blogs returns the blogs API bound to this client.
func (c *Client) Blogs() *BlogsAPI { return &BlogsAPI{client: c} }

// List fetches one page of posts.
func (b *BlogsAPI) List(ctx context.Context, opts model.BlogListOptions) (model.Page[model.Blog], error) {
	q := listQuery(opts.ListOptions)
	if opts.Published != nil {
		q.Set("status", strconv.FormatBool(*opts.Published))
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}

	var data json.RawMessage
	if err := b.client.Get(ctx, pathBlogs, q, &data); err != nil {
		return model.Page[model.Blog]{}, err
	}
	return decodePage[model.Blog](data)
}

// Get fetches one post by ID.
func (b *BlogsAPI) Get(ctx context.Context, id string) (model.Blog, error) {
	if id == "" {
		return model.Blog{}, apperrors.Validation("blog ID is required")
	}
	var blog model.Blog
	err := b.client.Get(ctx, pathBlogs+"/"+url.PathEscape(id), nil, &blog)
	return blog, err
}

// Create creates a post.
func (b *BlogsAPI) Create(ctx context.Context, input model.CreateBlogInput) (model.Blog, error) {
	var blog model.Blog
	err := b.client.Post(ctx, pathBlogs, input, &blog)
	return blog, err
}

// Update updates a post.
func (b *BlogsAPI) Update(ctx context.Context, id string, input model.UpdateBlogInput) (model.Blog, error) {
	if id == "" {
		return model.Blog{}, apperrors.Validation("blog ID is required")
	}
	var blog model.Blog
	err := b.client.Put(ctx, pathBlogs+"/"+url.PathEscape(id), input, &blog)
	return blog, err
}

// SetStatus flips the post's visibility via the status PATCH endpoint.
func (b *BlogsAPI) SetStatus(ctx context.Context, id string, published bool) (model.Blog, error) {
	if id == "" {
		return model.Blog{}, apperrors.Validation("blog ID is required")
	}
	var blog model.Blog
	body := map[string]bool{"status": published}
	err := b.client.Patch(ctx, pathBlogs+"/"+url.PathEscape(id)+"/status", body, &blog)
	return blog, err
}

// Delete removes a post.
func (b *BlogsAPI) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("blog ID is required")
	}
	return b.client.Delete(ctx, pathBlogs+"/"+url.PathEscape(id), nil)
}

// Categories fetches the known blog categories.
func (b *BlogsAPI) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := b.client.Get(ctx, pathBlogs+"/categories", nil, &cats)
	return cats, err
}

// Stats fetches the blog aggregate counts.
func (b *BlogsAPI) Stats(ctx context.Context) (model.BlogStats, error) {
	var stats model.BlogStats
	err := b.client.Get(ctx, pathBlogs+"/stats", nil, &stats)
	return stats, err
}

// UploadImage attaches a cover image to a post via a multipart upload.
func (b *BlogsAPI) UploadImage(ctx context.Context, id string, file UploadFile) (model.Blog, error) {
	if id == "" {
		return model.Blog{}, apperrors.Validation("blog ID is required")
	}
	var blog model.Blog
	err := b.client.UploadFiles(ctx, pathBlogs+"/"+url.PathEscape(id)+"/image", MultipartBody{Files: []UploadFile{file}}, &blog)
	return blog, err
}
