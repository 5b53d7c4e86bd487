package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/micropost/internal/model"
	"github.com/xxxsen/micropost/internal/testutil"
)

func seedUser(t *testing.T, store *testutil.MemStore, id, name string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Email: id + "@example.com", Name: name, PasswordHash: "hash", Ctime: 1, Mtime: 1}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func seedPost(t *testing.T, store *testutil.MemStore, id, authorID string) *model.MicroPost {
	t.Helper()
	post := &model.MicroPost{ID: id, Title: "title " + id, Content: "content", AuthorID: authorID, Ctime: 1, Mtime: 1}
	require.NoError(t, store.Posts().Create(context.Background(), post))
	return post
}
