package models

type Series struct {
	Base
	Title       string    `gorm:"not null;index;size:200" json:"title" example:"Breaking Bad"`
	Synopsis    string    `gorm:"not null;type:text" json:"synopsis" example:"A chemistry teacher turns to..."`
	ImageURL    string    `gorm:"not null;size:500" json:"image_url"`
	ReleaseYear int       `gorm:"index" json:"release_year" example:"2008"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Episodes    []Episode `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"episodes,omitempty"`
}

func (Series) TableName() string {
	return "series"
}

type Episode struct {
	Base
	Title             string `gorm:"not null;size:200" json:"title" example:"Pilot"`
	Synopsis          string `gorm:"type:text" json:"synopsis"`
	SeasonNumber      int    `gorm:"not null;index" json:"season_number" example:"1"`
	EpisodeNumber     int    `gorm:"not null" json:"episode_number" example:"1"`
	DurationInMinutes int    `json:"duration_in_minutes" example:"58"`
	VideoSource       string `gorm:"not null;size:500" json:"video_source"`
	SeriesID          uint   `gorm:"index;not null" json:"series_id"`
}

func (Episode) TableName() string {
	return "episodes"
}
