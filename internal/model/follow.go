package model

type Follow struct {
	FollowerID string `json:"follower_id" db:"follower_id"`
	FollowedID string `json:"followed_id" db:"followed_id"`
	Ctime      int64  `json:"ctime" db:"ctime"`
}
