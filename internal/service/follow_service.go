package service

import (
	"context"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/timeutil"
)

type FollowService struct {
	users   UserStore
	follows FollowStore
}

func NewFollowService(users UserStore, follows FollowStore) *FollowService {
	return &FollowService{users: users, follows: follows}
}

// Toggle removes the edge when present and creates it otherwise, returning
// whether followerID follows followedID afterwards.
//
// The existence check and the write are separate store calls. Two concurrent
// toggles for the same pair can race; a duplicate insert then fails with
// ErrConflict and a lost delete with ErrNotFound.
func (s *FollowService) Toggle(ctx context.Context, followerID, followedID string) (bool, error) {
	if followerID == "" {
		return false, appErr.ErrUnauthorized
	}
	if followerID == followedID {
		return false, appErr.ErrSelfFollow
	}
	if err := s.ensureUser(ctx, followedID); err != nil {
		return false, err
	}
	exists, err := s.follows.Exists(ctx, followerID, followedID)
	if err != nil {
		return false, err
	}
	logger := logutil.GetLogger(ctx).With(zap.String("follower_id", followerID), zap.String("followed_id", followedID))
	if exists {
		if err := s.follows.Delete(ctx, followerID, followedID); err != nil {
			return false, err
		}
		logger.Debug("unfollowed")
		return false, nil
	}
	edge := &model.Follow{FollowerID: followerID, FollowedID: followedID, Ctime: timeutil.NowUnix()}
	if err := s.follows.Create(ctx, edge); err != nil {
		return false, err
	}
	logger.Debug("followed")
	return true, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	if followerID == "" || followerID == followedID {
		return false, nil
	}
	return s.follows.Exists(ctx, followerID, followedID)
}

func (s *FollowService) Followers(ctx context.Context, userID string) ([]model.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *FollowService) Following(ctx context.Context, userID string) ([]model.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *FollowService) ensureUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return appErr.ErrUserNotFound
		}
		return err
	}
	return nil
}
