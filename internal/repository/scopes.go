package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Common scopes shared by handlers and services.

func ByAccount(accountID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id = ?", accountID)
	}
}

func ByProfile(profileID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("profile_id = ?", profileID)
	}
}

func ByMovie(movieID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("movie_id = ?", movieID)
	}
}

func ByCategory(categoryID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID)
	}
}

func BySeries(seriesID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("series_id = ?", seriesID)
	}
}

// NameEquals matches case-insensitively so duplicate checks catch
// "Drama" vs "drama".
func NameEquals(name string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(name) = ?", strings.ToLower(name))
	}
}

func TitleEquals(title string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(title) = ?", strings.ToLower(title))
	}
}

func TitleContains(search string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where("LOWER(title) LIKE ? OR LOWER(synopsis) LIKE ?", pattern, pattern)
	}
}

func Preload(association string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association)
	}
}

func OrderBy(expr string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	}
}
