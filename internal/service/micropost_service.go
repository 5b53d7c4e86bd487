package service

import (
	"context"
	"errors"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/pagination"
	"github.com/xxxsen/micropost/internal/pkg/timeutil"
)

// MicroPostInput carries post fields; nil fields are left unchanged on update.
type MicroPostInput struct {
	Title   *string
	Content *string
}

func (in MicroPostInput) title() (string, bool) {
	if in.Title == nil {
		return "", false
	}
	return strings.TrimSpace(*in.Title), true
}

type PostPage struct {
	pagination.Page
	Data []model.MicroPost `json:"data"`
}

type MicroPostService struct {
	posts MicroPostStore
}

func NewMicroPostService(posts MicroPostStore) *MicroPostService {
	return &MicroPostService{posts: posts}
}

func (s *MicroPostService) List(ctx context.Context) ([]model.MicroPost, error) {
	return s.posts.List(ctx, 0, 0)
}

// ListPage returns one window of posts, newest first, with its page
// descriptor. page is not clamped: a page past the end yields no data.
func (s *MicroPostService) ListPage(ctx context.Context, page, perPage int) (*PostPage, error) {
	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	data := []model.MicroPost{}
	if perPage > 0 {
		data, err = s.posts.List(ctx, perPage, pagination.Offset(page, perPage))
		if err != nil {
			return nil, err
		}
	}
	return &PostPage{Page: pagination.Paginate(page, perPage, total), Data: data}, nil
}

func (s *MicroPostService) ListByAuthor(ctx context.Context, authorID string) ([]model.MicroPost, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

func (s *MicroPostService) Get(ctx context.Context, postID string) (*model.MicroPost, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return nil, appErr.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// HasAccess reports whether userID may modify postID. A missing post and
// an anonymous caller both get false.
func (s *MicroPostService) HasAccess(ctx context.Context, userID, postID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return post.AuthorID == userID, nil
}

func (s *MicroPostService) Create(ctx context.Context, authorID string, input MicroPostInput) (*model.MicroPost, error) {
	if authorID == "" {
		return nil, appErr.ErrUnauthorized
	}
	title, _ := input.title()
	if title == "" {
		return nil, appErr.ErrTitleRequired
	}
	content := ""
	if input.Content != nil {
		content = *input.Content
	}
	now := timeutil.NowUnix()
	post := &model.MicroPost{
		ID:       newID(),
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("micro post created", zap.String("post_id", post.ID), zap.String("author_id", authorID))
	return post, nil
}

// Update applies the non-nil fields of input. An explicitly blank title is
// rejected; an absent one keeps the current title.
func (s *MicroPostService) Update(ctx context.Context, userID, postID string, input MicroPostInput) (*model.MicroPost, error) {
	title, hasTitle := input.title()
	if hasTitle && title == "" {
		return nil, appErr.ErrTitleRequired
	}
	ok, err := s.HasAccess(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErr.ErrPostNotOwned
	}
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if hasTitle {
		post.Title = title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	post.Mtime = timeutil.NowUnix()
	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return nil, appErr.ErrPostNotFound
		}
		return nil, err
	}
	return s.Get(ctx, postID)
}

func (s *MicroPostService) Delete(ctx context.Context, userID, postID string) error {
	ok, err := s.HasAccess(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !ok {
		return appErr.ErrPostNotOwned
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return appErr.ErrPostNotFound
		}
		return err
	}
	logutil.GetLogger(ctx).Info("micro post deleted", zap.String("post_id", postID), zap.String("user_id", userID))
	return nil
}
