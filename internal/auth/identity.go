package auth

import "github.com/xxxsen/micropost/internal/model"

// Identity is who a request acts as: anonymous or a resolved user.
// The zero value is anonymous.
type Identity struct {
	user *model.User
}

func Anonymous() Identity {
	return Identity{}
}

// Identified keeps a copy of u without its password hash.
func Identified(u *model.User) Identity {
	if u == nil {
		return Anonymous()
	}
	return Identity{user: u.Public()}
}

func (i Identity) User() (*model.User, bool) {
	if i.user == nil {
		return nil, false
	}
	return i.user, true
}

func (i Identity) UserID() string {
	if i.user == nil {
		return ""
	}
	return i.user.ID
}

func (i Identity) IsAnonymous() bool {
	return i.user == nil
}
