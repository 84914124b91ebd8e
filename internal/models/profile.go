package models

import "time"

type Profile struct {
	Base
	Name      string            `gorm:"not null;size:100" json:"name" example:"Kids"`
	IsChild   bool              `json:"is_child" example:"false"`
	Avatar    string            `gorm:"size:255" json:"avatar" example:"avatars/robot.png"`
	AccountID uint              `gorm:"index;not null" json:"account_id"`
	Bookmarks []BookmarkedMovie `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"bookmarks,omitempty"`
	Watched   []WatchedMovie    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"watched,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

type BookmarkedMovie struct {
	Base
	ProfileID uint   `gorm:"index;not null;uniqueIndex:idx_bookmark_profile_movie" json:"profile_id"`
	MovieID   uint   `gorm:"index;not null;uniqueIndex:idx_bookmark_profile_movie" json:"movie_id"`
	Movie     *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"movie,omitempty"`
}

func (BookmarkedMovie) TableName() string {
	return "bookmarked_movies"
}

type WatchedMovie struct {
	Base
	ProfileID uint      `gorm:"index;not null" json:"profile_id"`
	MovieID   uint      `gorm:"index;not null" json:"movie_id"`
	Movie     *Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"movie,omitempty"`
	WatchedAt time.Time `gorm:"index" json:"watched_at"`
}

func (WatchedMovie) TableName() string {
	return "watched_movies"
}
