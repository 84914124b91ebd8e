package handlers

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SelectProfileRequest struct {
	ProfileID uint `json:"profile_id" validate:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type MovieRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Synopsis          string `json:"synopsis" validate:"required"`
	ImageURL          string `json:"image_url" validate:"required,max=500"`
	VideoSource       string `json:"video_source" validate:"required,max=500"`
	ReleaseYear       int    `json:"release_year" validate:"gte=1888,lte=2100"`
	DurationInMinutes int    `json:"duration_in_minutes" validate:"gte=1"`
	CategoryID        uint   `json:"category_id" validate:"required"`
}

type SeriesRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Synopsis    string `json:"synopsis" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required,max=500"`
	ReleaseYear int    `json:"release_year" validate:"gte=1888,lte=2100"`
	CategoryID  uint   `json:"category_id" validate:"required"`
}

type EpisodeRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Synopsis          string `json:"synopsis"`
	SeasonNumber      int    `json:"season_number" validate:"gte=1"`
	EpisodeNumber     int    `json:"episode_number" validate:"gte=1"`
	DurationInMinutes int    `json:"duration_in_minutes" validate:"gte=1"`
	VideoSource       string `json:"video_source" validate:"required,max=500"`
}

type ProfileRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	IsChild bool   `json:"is_child"`
	Avatar  string `json:"avatar" validate:"max=255"`
}

type BookmarkRequest struct {
	MovieID uint `json:"movie_id" validate:"required"`
}

type WatchedRequest struct {
	MovieID uint `json:"movie_id" validate:"required"`
}

type TokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	Account   interface{} `json:"account,omitempty"`
}
