package model

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	LastName     string `json:"last_name" db:"last_name"`
	About        string `json:"about" db:"about"`
	PasswordHash string `json:"-" db:"password_hash"`
	Ctime        int64  `json:"ctime" db:"ctime"`
	Mtime        int64  `json:"mtime" db:"mtime"`
}

// Public returns a copy of the user safe to hand out of the store boundary.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

// Author is the projection of a user embedded in micro posts.
type Author struct {
	ID       string `json:"id" db:"author_id"`
	Name     string `json:"name" db:"author_name"`
	LastName string `json:"last_name" db:"author_last_name"`
}
