package repo

import (
	"context"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/micropost/internal/model"
	"github.com/xxxsen/micropost/internal/pkg/dbutil"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
)

const followUserColumns = "u.id, u.email, u.name, u.last_name, u.about, u.password_hash, u.ctime, u.mtime"

type FollowRepo struct {
	db *sqlx.DB
}

func NewFollowRepo(db *sqlx.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var exists bool
	query := r.db.Rebind("SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?)")
	if err := r.db.GetContext(ctx, &exists, query, followerID, followedID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FollowRepo) Create(ctx context.Context, follow *model.Follow) error {
	data := map[string]interface{}{
		"follower_id": follow.FollowerID,
		"followed_id": follow.FollowedID,
		"ctime":       follow.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("follows", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		if dbutil.IsForeignKeyViolation(err) {
			return appErr.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID string) error {
	where := map[string]interface{}{
		"follower_id": followerID,
		"followed_id": followedID,
	}
	sqlStr, args, err := builder.BuildDelete("follows", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

// ListFollowers returns the users following userID, most recent edge first.
func (r *FollowRepo) ListFollowers(ctx context.Context, userID string) ([]model.User, error) {
	query := "SELECT " + followUserColumns + " FROM follows f JOIN users u ON u.id = f.follower_id" +
		" WHERE f.followed_id = ? ORDER BY f.ctime DESC, f.seq DESC"
	return r.listUsers(ctx, query, userID)
}

// ListFollowing returns the users userID follows, most recent edge first.
func (r *FollowRepo) ListFollowing(ctx context.Context, userID string) ([]model.User, error) {
	query := "SELECT " + followUserColumns + " FROM follows f JOIN users u ON u.id = f.followed_id" +
		" WHERE f.follower_id = ? ORDER BY f.ctime DESC, f.seq DESC"
	return r.listUsers(ctx, query, userID)
}

func (r *FollowRepo) listUsers(ctx context.Context, query string, userID string) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), userID); err != nil {
		return nil, err
	}
	return users, nil
}
