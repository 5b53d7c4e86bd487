package model

type MicroPost struct {
	ID       string  `json:"id" db:"id"`
	Title    string  `json:"title" db:"title"`
	Content  string  `json:"content" db:"content"`
	AuthorID string  `json:"author_id" db:"author_id"`
	Author   *Author `json:"author,omitempty" db:"-"`
	Ctime    int64   `json:"ctime" db:"ctime"`
	Mtime    int64   `json:"mtime" db:"mtime"`
}
