package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/testutil"
)

func TestPostgresRoundTrip(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(conn)
	posts := NewMicroPostRepo(conn)
	follows := NewFollowRepo(conn)

	ann := &model.User{ID: "u-ann", Email: "ann@example.com", Name: "Ann", PasswordHash: "h", Ctime: 1, Mtime: 1}
	bob := &model.User{ID: "u-bob", Email: "bob@example.com", Name: "Bob", PasswordHash: "h", Ctime: 2, Mtime: 2}
	require.NoError(t, users.Create(ctx, ann))
	require.NoError(t, users.Create(ctx, bob))
	require.ErrorIs(t, users.Create(ctx, &model.User{ID: "u-dup", Email: "ann@example.com"}), appErr.ErrConflict)

	for i, id := range []string{"p1", "p2", "p3"} {
		post := &model.MicroPost{ID: id, Title: id, AuthorID: ann.ID, Ctime: int64(10 + i), Mtime: int64(10 + i)}
		require.NoError(t, posts.Create(ctx, post))
	}
	require.ErrorIs(t, posts.Create(ctx, &model.MicroPost{ID: "px", Title: "x", AuthorID: "ghost"}), appErr.ErrNotFound)

	page, err := posts.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "p3", page[0].ID)
	require.Equal(t, "Ann", page[0].Author.Name)

	rest, err := posts.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "p1", rest[0].ID)

	require.NoError(t, follows.Create(ctx, &model.Follow{FollowerID: bob.ID, FollowedID: ann.ID, Ctime: 5}))
	require.ErrorIs(t, follows.Create(ctx, &model.Follow{FollowerID: bob.ID, FollowedID: ann.ID, Ctime: 6}), appErr.ErrConflict)
	exists, err := follows.Exists(ctx, bob.ID, ann.ID)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, users.Delete(ctx, ann.ID))
	count, err := posts.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	exists, err = follows.Exists(ctx, bob.ID, ann.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestPostgresTieBreaks(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(conn)
	posts := NewMicroPostRepo(conn)
	follows := NewFollowRepo(conn)

	for _, id := range []string{"u-c", "u-a", "u-b"} {
		require.NoError(t, users.Create(ctx, &model.User{ID: id, Email: id + "@example.com", PasswordHash: "h", Ctime: 1, Mtime: 1}))
	}
	listed, err := users.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "u-a", listed[0].ID)
	require.Equal(t, "u-c", listed[2].ID)

	for _, id := range []string{"p-1", "p-3", "p-2"} {
		require.NoError(t, posts.Create(ctx, &model.MicroPost{ID: id, Title: id, AuthorID: "u-a", Ctime: 7, Mtime: 7}))
	}
	all, err := posts.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"p-3", "p-2", "p-1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	require.NoError(t, follows.Create(ctx, &model.Follow{FollowerID: "u-b", FollowedID: "u-c", Ctime: 9}))
	require.NoError(t, follows.Create(ctx, &model.Follow{FollowerID: "u-a", FollowedID: "u-c", Ctime: 9}))
	followers, err := follows.ListFollowers(ctx, "u-c")
	require.NoError(t, err)
	require.Len(t, followers, 2)
	require.Equal(t, "u-a", followers[0].ID)
}
