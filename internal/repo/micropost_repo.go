package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/micropost/internal/model"
	"github.com/xxxsen/micropost/internal/pkg/dbutil"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
)

const postWithAuthorSQL = `SELECT p.id, p.title, p.content, p.author_id, p.ctime, p.mtime,
	u.name AS author_name, u.last_name AS author_last_name
FROM microposts p JOIN users u ON u.id = p.author_id`

type postRow struct {
	model.MicroPost
	AuthorName     string `db:"author_name"`
	AuthorLastName string `db:"author_last_name"`
}

func (r postRow) toModel() model.MicroPost {
	post := r.MicroPost
	post.Author = &model.Author{ID: post.AuthorID, Name: r.AuthorName, LastName: r.AuthorLastName}
	return post
}

func toPosts(rows []postRow) []model.MicroPost {
	posts := make([]model.MicroPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts
}

type MicroPostRepo struct {
	db *sqlx.DB
}

func NewMicroPostRepo(db *sqlx.DB) *MicroPostRepo {
	return &MicroPostRepo{db: db}
}

func (r *MicroPostRepo) Create(ctx context.Context, post *model.MicroPost) error {
	data := map[string]interface{}{
		"id":        post.ID,
		"title":     post.Title,
		"content":   post.Content,
		"author_id": post.AuthorID,
		"ctime":     post.Ctime,
		"mtime":     post.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("microposts", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return appErr.ErrUserNotFound
		}
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *MicroPostRepo) GetByID(ctx context.Context, postID string) (*model.MicroPost, error) {
	var row postRow
	query := r.db.Rebind(postWithAuthorSQL + " WHERE p.id = ?")
	if err := r.db.GetContext(ctx, &row, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	post := row.toModel()
	return &post, nil
}

// List returns posts newest first. A zero limit returns every post.
func (r *MicroPostRepo) List(ctx context.Context, limit, offset int) ([]model.MicroPost, error) {
	query := postWithAuthorSQL + " ORDER BY p.ctime DESC, p.id DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	rows := make([]postRow, 0)
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return toPosts(rows), nil
}

func (r *MicroPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]model.MicroPost, error) {
	query := r.db.Rebind(postWithAuthorSQL + " WHERE p.author_id = ? ORDER BY p.ctime DESC, p.id DESC")
	rows := make([]postRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query, authorID); err != nil {
		return nil, err
	}
	return toPosts(rows), nil
}

func (r *MicroPostRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(1) FROM microposts"); err != nil {
		return 0, err
	}
	return count, nil
}

// Update rewrites title and content. The author is fixed at creation.
func (r *MicroPostRepo) Update(ctx context.Context, post *model.MicroPost) error {
	where := map[string]interface{}{"id": post.ID}
	update := map[string]interface{}{
		"title":   post.Title,
		"content": post.Content,
		"mtime":   post.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("microposts", where, update)
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

func (r *MicroPostRepo) Delete(ctx context.Context, postID string) error {
	sqlStr, args, err := builder.BuildDelete("microposts", map[string]interface{}{"id": postID})
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
