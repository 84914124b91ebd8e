package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"streamhub-backend/internal/config"
	"streamhub-backend/internal/database"
	"streamhub-backend/internal/handlers"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/profiles"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/routes"
	"streamhub-backend/internal/services"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  string                `json:"status"`
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Meta    *utils.PaginationMeta `json:"meta"`
}

// fakeImageStore records poster deletions so tests can assert when cleanup
// runs.
type fakeImageStore struct {
	deleted []string
}

func (f *fakeImageStore) DeleteFile(objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return nil
}

// testApp wires the full route tree onto an in-memory database. Poster
// cleanup goes through a recording fake; upload routes are not exercised
// here.
type testApp struct {
	app      *fiber.App
	accounts repository.AccountRepository
	movies   *repository.Repository[models.Movie]
	images   *fakeImageStore
	tokens   *services.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gdb))
	db := database.New(gdb, 5*time.Second)

	log := logrus.New()
	log.SetOutput(io.Discard)

	accountRepo := repository.NewAccountRepository(db, log)
	categoryRepo := repository.New[models.Category](db, "Category", log)
	movieRepo := repository.New[models.Movie](db, "Movie", log)
	seriesRepo := repository.New[models.Series](db, "Series", log)
	episodeRepo := repository.New[models.Episode](db, "Episode", log)
	profileRepo := repository.New[models.Profile](db, "Profile", log)
	bookmarkRepo := repository.New[models.BookmarkedMovie](db, "Bookmark", log)
	watchedRepo := repository.New[models.WatchedMovie](db, "Watch entry", log)

	tokens := services.NewTokenService(config.JWTConfig{
		Secret:    "handler-test-secret",
		Issuer:    "streamhub-test",
		AccessTTL: time.Hour,
	})
	accountSvc := services.NewAccountService(accountRepo, tokens, log)

	avatars := &profiles.StaticAvatarProvider{Paths: []string{"avatars/robot.png"}}
	manager := profiles.NewManager(accountRepo, profileRepo, profiles.NewCreationPolicy(accountRepo), avatars, log)

	images := &fakeImageStore{}

	app := fiber.New()
	routes.Setup(app, routes.Handlers{
		Accounts:   handlers.NewAccountHandler(accountSvc, log),
		Categories: handlers.NewCategoryHandler(categoryRepo, movieRepo, log),
		Movies:     handlers.NewMovieHandler(movieRepo, categoryRepo, images, log),
		Series:     handlers.NewSeriesHandler(seriesRepo, episodeRepo, categoryRepo, log),
		Profiles:   handlers.NewProfileHandler(manager, log),
		Activity:   handlers.NewActivityHandler(manager, bookmarkRepo, watchedRepo, movieRepo, log),
		Uploads:    handlers.NewUploadHandler(nil, log),
	}, tokens)

	ta := &testApp{app: app, accounts: accountRepo, movies: movieRepo, images: images, tokens: tokens}

	// Seed a catalog owner so admin routes can be exercised.
	seedCategories(t, categoryRepo)
	return ta
}

func seedCategories(t *testing.T, repo *repository.Repository[models.Category]) {
	t.Helper()
	res := repo.Save(t.Context(), &models.Category{Name: "Drama"})
	require.True(t, res.IsSuccess, res.Message)
}

func (ta *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// tokenFor creates an account directly and signs a token for it, bypassing
// the registration endpoint.
func (ta *testApp) tokenFor(t *testing.T, email, role string) (string, *models.Account) {
	t.Helper()

	hash, err := utils.HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	account := &models.Account{Name: "Tester", Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, ta.accounts.Create(t.Context(), account))

	token, _, err := ta.tokens.Generate(account, nil)
	require.NoError(t, err)
	return token, account
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ta := newTestApp(t)

	body := map[string]string{"name": "Jane", "email": "jane@example.com", "password": "supersecret"}
	code, env := ta.do(t, http.MethodPost, "/api/v1/accounts/register", "", body)
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "success", env.Status)

	code, env = ta.do(t, http.MethodPost, "/api/v1/accounts/register", "", body)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "An account with this email already exists", env.Message)

	code, env = ta.do(t, http.MethodPost, "/api/v1/accounts/authenticate", "", map[string]string{
		"email": "jane@example.com", "password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, code)

	var tokenResp handlers.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokenResp))
	claims, err := ta.tokens.Parse(tokenResp.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	ta := newTestApp(t)
	ta.tokenFor(t, "jane@example.com", models.RoleUser)

	code, env := ta.do(t, http.MethodPost, "/api/v1/accounts/authenticate", "", map[string]string{
		"email": "jane@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Message)

	code, _ = ta.do(t, http.MethodPost, "/api/v1/accounts/authenticate", "", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestRegisterValidation(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(t, http.MethodPost, "/api/v1/accounts/register", "", map[string]string{
		"name": "Jane", "email": "not-an-email", "password": "short",
	})
	require.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)

	var fields []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	got := map[string]string{}
	for _, fe := range fields {
		got[fe["field"]] = fe["message"]
	}
	assert.Contains(t, got, "email")
	assert.Contains(t, got, "password")
}

func TestCategoryAuthorization(t *testing.T) {
	ta := newTestApp(t)
	userToken, _ := ta.tokenFor(t, "user@example.com", models.RoleUser)
	adminToken, _ := ta.tokenFor(t, "admin@example.com", models.RoleAdmin)

	body := map[string]string{"name": "Thriller"}

	code, _ := ta.do(t, http.MethodPost, "/api/v1/categories", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = ta.do(t, http.MethodPost, "/api/v1/categories", userToken, body)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = ta.do(t, http.MethodPost, "/api/v1/categories", adminToken, body)
	assert.Equal(t, fiber.StatusCreated, code)

	code, env := ta.do(t, http.MethodPost, "/api/v1/categories", adminToken, body)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "A category with this name already exists", env.Message)

	// Reads stay public.
	code, env = ta.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, fiber.StatusOK, code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Len(t, categories, 2)
}

func TestProfileQuota(t *testing.T) {
	ta := newTestApp(t)
	token, _ := ta.tokenFor(t, "jane@example.com", models.RoleUser)

	for i := 1; i <= profiles.MaxProfilesPerAccount; i++ {
		code, env := ta.do(t, http.MethodPost, "/api/v1/profiles", token, map[string]interface{}{
			"name": fmt.Sprintf("Profile %d", i),
		})
		require.Equal(t, fiber.StatusCreated, code, env.Message)
	}

	code, env := ta.do(t, http.MethodPost, "/api/v1/profiles", token, map[string]interface{}{
		"name": "One too many",
	})
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, profiles.MsgQuotaReached, env.Message)

	code, env = ta.do(t, http.MethodGet, "/api/v1/profiles", token, nil)
	require.Equal(t, fiber.StatusOK, code)
	var list []models.Profile
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, profiles.MaxProfilesPerAccount)
	for _, p := range list {
		assert.NotEmpty(t, p.Avatar)
	}
}

func TestProfileOwnership(t *testing.T) {
	ta := newTestApp(t)
	janeToken, _ := ta.tokenFor(t, "jane@example.com", models.RoleUser)
	rivalToken, _ := ta.tokenFor(t, "rival@example.com", models.RoleUser)

	code, env := ta.do(t, http.MethodPost, "/api/v1/profiles", janeToken, map[string]interface{}{"name": "Main"})
	require.Equal(t, fiber.StatusCreated, code)
	var created models.Profile
	require.NoError(t, json.Unmarshal(env.Data, &created))

	path := fmt.Sprintf("/api/v1/profiles/%d", created.ID)
	code, env = ta.do(t, http.MethodPut, path, rivalToken, map[string]interface{}{"name": "Hijacked"})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, profiles.MsgProfileNotFound, env.Message)

	code, _ = ta.do(t, http.MethodDelete, path, rivalToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = ta.do(t, http.MethodDelete, path, janeToken, nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestSelectProfileReissuesToken(t *testing.T) {
	ta := newTestApp(t)
	token, _ := ta.tokenFor(t, "jane@example.com", models.RoleUser)

	code, env := ta.do(t, http.MethodPost, "/api/v1/profiles", token, map[string]interface{}{"name": "Kids", "is_child": true})
	require.Equal(t, fiber.StatusCreated, code)
	var created models.Profile
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, env = ta.do(t, http.MethodPost, "/api/v1/accounts/profiles/select", token, map[string]interface{}{
		"profile_id": created.ID,
	})
	require.Equal(t, fiber.StatusOK, code)

	var tokenResp handlers.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokenResp))
	claims, err := ta.tokens.Parse(tokenResp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.ProfileID)
	assert.Equal(t, "Kids", claims.ProfileName)

	code, _ = ta.do(t, http.MethodPost, "/api/v1/accounts/profiles/select", token, map[string]interface{}{
		"profile_id": created.ID + 99,
	})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestMovieListPagination(t *testing.T) {
	ta := newTestApp(t)
	ctx := t.Context()

	for i := 1; i <= 5; i++ {
		res := ta.movies.Save(ctx, &models.Movie{
			Title:             fmt.Sprintf("Movie %d", i),
			Synopsis:          "A film",
			ImageURL:          "https://img.example.com/poster.png",
			VideoSource:       "https://video.example.com/stream",
			ReleaseYear:       2000 + i,
			DurationInMinutes: 90,
			CategoryID:        1,
		})
		require.True(t, res.IsSuccess, res.Message)
	}

	code, env := ta.do(t, http.MethodGet, "/api/v1/movies?page=2&limit=2", "", nil)
	require.Equal(t, fiber.StatusOK, code)

	var page []models.Movie
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 2)

	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(5), env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)
	require.NotNil(t, env.Meta.Next)
	require.NotNil(t, env.Meta.Previous)
	assert.Equal(t, "/api/v1/movies?page=3&limit=2", *env.Meta.Next)
	assert.Equal(t, "/api/v1/movies?page=1&limit=2", *env.Meta.Previous)
}

func TestMovieSearchFilters(t *testing.T) {
	ta := newTestApp(t)
	ctx := t.Context()

	titles := []string{"The Long Goodbye", "Goodfellas", "Heat"}
	for _, title := range titles {
		res := ta.movies.Save(ctx, &models.Movie{
			Title:             title,
			Synopsis:          "Crime drama",
			ImageURL:          "https://img.example.com/poster.png",
			VideoSource:       "https://video.example.com/stream",
			ReleaseYear:       1995,
			DurationInMinutes: 120,
			CategoryID:        1,
		})
		require.True(t, res.IsSuccess, res.Message)
	}

	code, env := ta.do(t, http.MethodGet, "/api/v1/movies?search=good", "", nil)
	require.Equal(t, fiber.StatusOK, code)

	var results []models.Movie
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 2)
}

func TestMovieImageCleanup(t *testing.T) {
	ta := newTestApp(t)
	adminToken, _ := ta.tokenFor(t, "admin@example.com", models.RoleAdmin)

	oldURL := "https://img.example.com/old-poster.png"
	res := ta.movies.Save(t.Context(), &models.Movie{
		Title:             "Heat",
		Synopsis:          "Crime drama",
		ImageURL:          oldURL,
		VideoSource:       "https://video.example.com/stream",
		ReleaseYear:       1995,
		DurationInMinutes: 170,
		CategoryID:        1,
	})
	require.True(t, res.IsSuccess, res.Message)

	update := map[string]interface{}{
		"title":               "Heat",
		"synopsis":            "Crime drama",
		"image_url":           "https://img.example.com/new-poster.png",
		"video_source":        "https://video.example.com/stream",
		"release_year":        1995,
		"duration_in_minutes": 170,
		"category_id":         1,
	}

	// A rejected update must leave the stored poster alone.
	code, _ := ta.do(t, http.MethodPut, "/api/v1/movies/1", adminToken, map[string]interface{}{
		"title": "Heat",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Empty(t, ta.images.deleted)

	update["category_id"] = 99
	code, _ = ta.do(t, http.MethodPut, "/api/v1/movies/1", adminToken, update)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Empty(t, ta.images.deleted)

	// A committed update replacing the poster removes exactly the old one.
	update["category_id"] = 1
	code, _ = ta.do(t, http.MethodPut, "/api/v1/movies/1", adminToken, update)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []string{oldURL}, ta.images.deleted)

	// Re-saving with the same poster removes nothing.
	code, _ = ta.do(t, http.MethodPut, "/api/v1/movies/1", adminToken, update)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []string{oldURL}, ta.images.deleted)

	code, _ = ta.do(t, http.MethodDelete, "/api/v1/movies/1", adminToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []string{oldURL, "https://img.example.com/new-poster.png"}, ta.images.deleted)
}

func TestBookmarkFlow(t *testing.T) {
	ta := newTestApp(t)
	token, _ := ta.tokenFor(t, "jane@example.com", models.RoleUser)

	code, env := ta.do(t, http.MethodPost, "/api/v1/profiles", token, map[string]interface{}{"name": "Main"})
	require.Equal(t, fiber.StatusCreated, code)
	var profile models.Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))

	res := ta.movies.Save(t.Context(), &models.Movie{
		Title:             "Heat",
		Synopsis:          "Crime drama",
		ImageURL:          "https://img.example.com/poster.png",
		VideoSource:       "https://video.example.com/stream",
		ReleaseYear:       1995,
		DurationInMinutes: 170,
		CategoryID:        1,
	})
	require.True(t, res.IsSuccess, res.Message)

	base := fmt.Sprintf("/api/v1/profiles/%d/bookmarks", profile.ID)

	code, _ = ta.do(t, http.MethodPost, base, token, map[string]interface{}{"movie_id": 1})
	assert.Equal(t, fiber.StatusCreated, code)

	code, env = ta.do(t, http.MethodPost, base, token, map[string]interface{}{"movie_id": 1})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Movie is already bookmarked", env.Message)

	code, _ = ta.do(t, http.MethodPost, base, token, map[string]interface{}{"movie_id": 99})
	assert.Equal(t, fiber.StatusNotFound, code)

	code, env = ta.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, fiber.StatusOK, code)
	var bookmarks []models.BookmarkedMovie
	require.NoError(t, json.Unmarshal(env.Data, &bookmarks))
	require.Len(t, bookmarks, 1)
	require.NotNil(t, bookmarks[0].Movie)
	assert.Equal(t, "Heat", bookmarks[0].Movie.Title)

	code, _ = ta.do(t, http.MethodDelete, base+"/1", token, nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, env = ta.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &bookmarks))
	assert.Empty(t, bookmarks)
}

func TestWatchedUpsert(t *testing.T) {
	ta := newTestApp(t)
	token, _ := ta.tokenFor(t, "jane@example.com", models.RoleUser)

	code, env := ta.do(t, http.MethodPost, "/api/v1/profiles", token, map[string]interface{}{"name": "Main"})
	require.Equal(t, fiber.StatusCreated, code)
	var profile models.Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))

	res := ta.movies.Save(t.Context(), &models.Movie{
		Title:             "Heat",
		Synopsis:          "Crime drama",
		ImageURL:          "https://img.example.com/poster.png",
		VideoSource:       "https://video.example.com/stream",
		ReleaseYear:       1995,
		DurationInMinutes: 170,
		CategoryID:        1,
	})
	require.True(t, res.IsSuccess, res.Message)

	base := fmt.Sprintf("/api/v1/profiles/%d/watched", profile.ID)

	code, _ = ta.do(t, http.MethodPost, base, token, map[string]interface{}{"movie_id": 1})
	assert.Equal(t, fiber.StatusCreated, code)

	// Rewatching refreshes the entry rather than adding a second row.
	code, _ = ta.do(t, http.MethodPost, base, token, map[string]interface{}{"movie_id": 1})
	assert.Equal(t, fiber.StatusOK, code)

	code, env = ta.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, fiber.StatusOK, code)
	var watched []models.WatchedMovie
	require.NoError(t, json.Unmarshal(env.Data, &watched))
	assert.Len(t, watched, 1)
}
