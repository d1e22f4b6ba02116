package models

// Follow is a directed edge from UserID (the follower) to FollowingID.
// The unique index and the check constraint are the storage-level guards
// against duplicate edges and self-follows.
type Follow struct {
	ID          int  `gorm:"primaryKey"`
	UserID      int  `gorm:"not null;uniqueIndex:idx_follow_user_following;check:chk_follow_not_self,user_id <> following_id"`
	User        User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FollowingID int  `gorm:"not null;uniqueIndex:idx_follow_user_following;index"`
	Following   User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

type FollowResponse struct {
	ID        int    `json:"id"`
	User      string `json:"user"`
	Following string `json:"following"`
}

func (f *Follow) Response() FollowResponse {
	return FollowResponse{
		ID:        f.ID,
		User:      f.User.Username,
		Following: f.Following.Username,
	}
}
