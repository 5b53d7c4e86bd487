package service

import (
	"context"

	"github.com/xxxsen/micropost/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID string) error
	Count(ctx context.Context) (int, error)
}

type MicroPostStore interface {
	Create(ctx context.Context, post *model.MicroPost) error
	GetByID(ctx context.Context, postID string) (*model.MicroPost, error)
	// List returns posts newest first; limit 0 means no limit.
	List(ctx context.Context, limit, offset int) ([]model.MicroPost, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.MicroPost, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *model.MicroPost) error
	Delete(ctx context.Context, postID string) error
}

type FollowStore interface {
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	Create(ctx context.Context, follow *model.Follow) error
	Delete(ctx context.Context, followerID, followedID string) error
	ListFollowers(ctx context.Context, userID string) ([]model.User, error)
	ListFollowing(ctx context.Context, userID string) ([]model.User, error)
}
