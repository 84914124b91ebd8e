package models

type Movie struct {
	Base
	Title             string    `gorm:"not null;index;size:200" json:"title" example:"Fight Club"`
	Synopsis          string    `gorm:"not null;type:text" json:"synopsis" example:"An insomniac office worker..."`
	ImageURL          string    `gorm:"not null;size:500" json:"image_url" example:"https://storage.example.com/movies/fight-club.jpg"`
	VideoSource       string    `gorm:"not null;size:500" json:"video_source" example:"https://cdn.example.com/movies/fight-club.mp4"`
	ReleaseYear       int       `gorm:"index" json:"release_year" example:"1999"`
	DurationInMinutes int       `json:"duration_in_minutes" example:"139"`
	CategoryID        uint      `gorm:"index;not null" json:"category_id"`
	Category          *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}
