package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
)

type followKey struct {
	follower string
	followed string
}

type userRow struct {
	model.User
}

type postRow struct {
	model.MicroPost
}

type seqFollow struct {
	model.Follow
	seq int
}

// MemStore is an in-memory row store mirroring the postgres repositories:
// same ordering, same not-found and conflict errors, cascading user deletes.
// Users and posts tie-break on id like the SQL; follow edges on an insert
// sequence standing in for follows.seq.
type MemStore struct {
	mu          sync.Mutex
	seq         int
	users       map[string]userRow
	posts       map[string]postRow
	follows     map[followKey]seqFollow
	userLookups int
	postLookups int
	failure     error
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:   make(map[string]userRow),
		posts:   make(map[string]postRow),
		follows: make(map[followKey]seqFollow),
	}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *MemStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// UserLookups reports how many times Users().GetByID was called.
func (s *MemStore) UserLookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userLookups
}

func (s *MemStore) PostLookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postLookups
}

func (s *MemStore) Users() *MemUsers {
	return &MemUsers{s: s}
}

func (s *MemStore) Posts() *MemPosts {
	return &MemPosts{s: s}
}

func (s *MemStore) Follows() *MemFollows {
	return &MemFollows{s: s}
}

func (s *MemStore) nextSeq() int {
	s.seq++
	return s.seq
}

type MemUsers struct {
	s *MemStore
}

func (m *MemUsers) Create(_ context.Context, user *model.User) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	if _, ok := s.users[user.ID]; ok {
		return appErr.ErrConflict
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	s.users[user.ID] = userRow{User: *user}
	return nil
}

func (m *MemUsers) GetByID(_ context.Context, userID string) (*model.User, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userLookups++
	if s.failure != nil {
		return nil, s.failure
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	user := u.User
	return &user, nil
}

func (m *MemUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	for _, u := range s.users {
		if u.Email == email {
			user := u.User
			return &user, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (m *MemUsers) List(_ context.Context) ([]model.User, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	rows := make([]userRow, 0, len(s.users))
	for _, u := range s.users {
		rows = append(rows, u)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Ctime != rows[j].Ctime {
			return rows[i].Ctime < rows[j].Ctime
		}
		return rows[i].ID < rows[j].ID
	})
	users := make([]model.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.User)
	}
	return users, nil
}

func (m *MemUsers) Update(_ context.Context, user *model.User) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	u, ok := s.users[user.ID]
	if !ok {
		return appErr.ErrNotFound
	}
	u.Name = user.Name
	u.LastName = user.LastName
	u.About = user.About
	u.Mtime = user.Mtime
	s.users[user.ID] = u
	return nil
}

func (m *MemUsers) Delete(_ context.Context, userID string) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	if _, ok := s.users[userID]; !ok {
		return appErr.ErrNotFound
	}
	delete(s.users, userID)
	for id, p := range s.posts {
		if p.AuthorID == userID {
			delete(s.posts, id)
		}
	}
	for k := range s.follows {
		if k.follower == userID || k.followed == userID {
			delete(s.follows, k)
		}
	}
	return nil
}

func (m *MemUsers) Count(_ context.Context) (int, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return 0, s.failure
	}
	return len(s.users), nil
}

type MemPosts struct {
	s *MemStore
}

func (m *MemPosts) withAuthor(p postRow) model.MicroPost {
	post := p.MicroPost
	author := &model.Author{ID: post.AuthorID}
	if u, ok := m.s.users[post.AuthorID]; ok {
		author.Name = u.Name
		author.LastName = u.LastName
	}
	post.Author = author
	return post
}

func (m *MemPosts) Create(_ context.Context, post *model.MicroPost) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	if _, ok := s.users[post.AuthorID]; !ok {
		return appErr.ErrUserNotFound
	}
	if _, ok := s.posts[post.ID]; ok {
		return appErr.ErrConflict
	}
	row := *post
	row.Author = nil
	s.posts[post.ID] = postRow{MicroPost: row}
	return nil
}

func (m *MemPosts) GetByID(_ context.Context, postID string) (*model.MicroPost, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postLookups++
	if s.failure != nil {
		return nil, s.failure
	}
	p, ok := s.posts[postID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	post := m.withAuthor(p)
	return &post, nil
}

func (m *MemPosts) sorted(keep func(model.MicroPost) bool) []model.MicroPost {
	rows := make([]postRow, 0, len(m.s.posts))
	for _, p := range m.s.posts {
		if keep == nil || keep(p.MicroPost) {
			rows = append(rows, p)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Ctime != rows[j].Ctime {
			return rows[i].Ctime > rows[j].Ctime
		}
		return rows[i].ID > rows[j].ID
	})
	posts := make([]model.MicroPost, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, m.withAuthor(r))
	}
	return posts
}

func (m *MemPosts) List(_ context.Context, limit, offset int) ([]model.MicroPost, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	posts := m.sorted(nil)
	if limit <= 0 {
		return posts, nil
	}
	if offset >= len(posts) {
		return []model.MicroPost{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (m *MemPosts) ListByAuthor(_ context.Context, authorID string) ([]model.MicroPost, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	return m.sorted(func(p model.MicroPost) bool { return p.AuthorID == authorID }), nil
}

func (m *MemPosts) Count(_ context.Context) (int, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return 0, s.failure
	}
	return len(s.posts), nil
}

func (m *MemPosts) Update(_ context.Context, post *model.MicroPost) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	p, ok := s.posts[post.ID]
	if !ok {
		return appErr.ErrNotFound
	}
	p.Title = post.Title
	p.Content = post.Content
	p.Mtime = post.Mtime
	s.posts[post.ID] = p
	return nil
}

func (m *MemPosts) Delete(_ context.Context, postID string) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	if _, ok := s.posts[postID]; !ok {
		return appErr.ErrNotFound
	}
	delete(s.posts, postID)
	return nil
}

type MemFollows struct {
	s *MemStore
}

func (m *MemFollows) Exists(_ context.Context, followerID, followedID string) (bool, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return false, s.failure
	}
	_, ok := s.follows[followKey{follower: followerID, followed: followedID}]
	return ok, nil
}

func (m *MemFollows) Create(_ context.Context, follow *model.Follow) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	key := followKey{follower: follow.FollowerID, followed: follow.FollowedID}
	if _, ok := s.follows[key]; ok {
		return appErr.ErrConflict
	}
	_, okFollower := s.users[follow.FollowerID]
	_, okFollowed := s.users[follow.FollowedID]
	if !okFollower || !okFollowed {
		return appErr.ErrUserNotFound
	}
	s.follows[key] = seqFollow{Follow: *follow, seq: s.nextSeq()}
	return nil
}

func (m *MemFollows) Delete(_ context.Context, followerID, followedID string) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	key := followKey{follower: followerID, followed: followedID}
	if _, ok := s.follows[key]; !ok {
		return appErr.ErrNotFound
	}
	delete(s.follows, key)
	return nil
}

func (m *MemFollows) ListFollowers(_ context.Context, userID string) ([]model.User, error) {
	return m.list(func(k followKey) (string, bool) { return k.follower, k.followed == userID })
}

func (m *MemFollows) ListFollowing(_ context.Context, userID string) ([]model.User, error) {
	return m.list(func(k followKey) (string, bool) { return k.followed, k.follower == userID })
}

func (m *MemFollows) list(pick func(followKey) (string, bool)) ([]model.User, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	type edge struct {
		userID string
		f      seqFollow
	}
	edges := make([]edge, 0)
	for k, f := range s.follows {
		if id, ok := pick(k); ok {
			edges = append(edges, edge{userID: id, f: f})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].f.Ctime != edges[j].f.Ctime {
			return edges[i].f.Ctime > edges[j].f.Ctime
		}
		return edges[i].f.seq > edges[j].f.seq
	})
	users := make([]model.User, 0, len(edges))
	for _, e := range edges {
		if u, ok := s.users[e.userID]; ok {
			users = append(users, u.User)
		}
	}
	return users, nil
}
