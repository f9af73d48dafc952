package models

import (
	"time"
)

type ActivityType string

const (
	ActivityPostCreate   ActivityType = "POST_CREATE"
	ActivityPostLike     ActivityType = "POST_LIKE"
	ActivityUserFollow   ActivityType = "USER_FOLLOW"
	ActivityUserUnfollow ActivityType = "USER_UNFOLLOW"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityPostCreate, ActivityPostLike, ActivityUserFollow, ActivityUserUnfollow:
		return true
	}
	return false
}

// ActivityLog is an append-only record of a user-initiated event. The meaning
// of EntityID depends on ActivityType: POST_CREATE -> posts.id, POST_LIKE ->
// likes.id, USER_FOLLOW -> follows.id, USER_UNFOLLOW -> the unfollowed
// users.id (the edge itself is gone by the time the row is read). Rows outlive
// the entities they reference.
type ActivityLog struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	UserID       uint         `json:"user_id" gorm:"not null;index:idx_user_type_created,priority:1"`
	ActivityType ActivityType `json:"activity_type" gorm:"size:32;not null;index:idx_user_type_created,priority:2"`
	EntityID     uint         `json:"entity_id" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"index:idx_user_type_created,priority:3"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// EntityRef ties an activity type to the id it refers to, so the two cannot
// disagree at the write site. Storage stays a flat (activity_type, entity_id)
// pair.
type EntityRef interface {
	ActivityType() ActivityType
	EntityID() uint
}

type PostRef uint

func (r PostRef) ActivityType() ActivityType { return ActivityPostCreate }
func (r PostRef) EntityID() uint             { return uint(r) }

type LikeRef uint

func (r LikeRef) ActivityType() ActivityType { return ActivityPostLike }
func (r LikeRef) EntityID() uint             { return uint(r) }

type FollowRef uint

func (r FollowRef) ActivityType() ActivityType { return ActivityUserFollow }
func (r FollowRef) EntityID() uint             { return uint(r) }

// UnfollowRef carries the unfollowed user's id, not the deleted edge's id.
type UnfollowRef uint

func (r UnfollowRef) ActivityType() ActivityType { return ActivityUserUnfollow }
func (r UnfollowRef) EntityID() uint             { return uint(r) }

// NewActivityLog builds the row for a ref; CreatedAt is filled by gorm.
func NewActivityLog(userID uint, ref EntityRef) *ActivityLog {
	return &ActivityLog{
		UserID:       userID,
		ActivityType: ref.ActivityType(),
		EntityID:     ref.EntityID(),
	}
}
