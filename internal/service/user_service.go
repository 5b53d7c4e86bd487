package service

import (
	"context"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/timeutil"
	"github.com/xxxsen/micropost/internal/pkg/userutil"
)

// UserUpdateInput holds profile fields to change; nil fields are kept.
type UserUpdateInput struct {
	Name     *string
	LastName *string
	About    *string
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetPublic(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// ListFiltered narrows users to full names starting with prefix (when set)
// and then applies the display filter.
func (s *UserService) ListFiltered(ctx context.Context, filter, prefix string) (*userutil.Filtered, error) {
	if _, err := userutil.ApplyFilter(nil, filter); err != nil {
		return nil, err
	}
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if prefix != "" {
		users = userutil.FilterByPrefix(users, prefix)
	}
	return userutil.ApplyFilter(users, filter)
}

func (s *UserService) Update(ctx context.Context, userID string, input UserUpdateInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.About != nil {
		user.About = *input.About
	}
	user.Mtime = timeutil.NowUnix()
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return appErr.ErrUserNotFound
		}
		return err
	}
	logutil.GetLogger(ctx).Info("user deleted", zap.String("user_id", userID))
	return nil
}

func publicUsers(users []model.User) []model.User {
	out := make([]model.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Public())
	}
	return out
}
