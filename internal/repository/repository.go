package repository

import (
	"context"
	"errors"
	"time"

	"streamhub-backend/internal/database"
	"streamhub-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Scope narrows a query, e.g. ByAccount(id) or TitleContains(q). Scopes are
// plain gorm scope functions so they compose with Preload and ordering.
type Scope func(*gorm.DB) *gorm.DB

// Repository is a generic data-access component instantiated once per entity
// type. The label names the entity in log lines and result messages instead
// of reflecting on the type.
type Repository[T models.Entity] struct {
	db      *database.Database
	label   string
	logger  *logrus.Logger
	timeout time.Duration
}

func New[T models.Entity](db *database.Database, label string, logger *logrus.Logger) *Repository[T] {
	return &Repository[T]{
		db:      db,
		label:   label,
		logger:  logger,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *Repository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Save inserts a new record. The store assigns the primary key.
func (r *Repository[T]) Save(ctx context.Context, entity *T) Result {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.WithError(err).WithField("entity", r.label).Error("Failed to save entity")
		return Failure(err.Error())
	}
	return Success(r.label + " saved successfully")
}

// Update persists the incoming instance after verifying a record with the
// same primary key exists. A missing record is a failure, not an error.
func (r *Repository[T]) Update(ctx context.Context, entity *T) Result {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id := (*entity).PrimaryKey()
	var existing T
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Failure(r.label + " not found")
		}
		r.logger.WithError(err).WithFields(logrus.Fields{"entity": r.label, "id": id}).Error("Failed to look up entity for update")
		return Failure(err.Error())
	}

	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{"entity": r.label, "id": id}).Error("Failed to update entity")
		return Failure(err.Error())
	}
	return Success(r.label + " updated successfully")
}

// Delete removes the record. Deletion is physical; there is no soft delete.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) Result {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Delete(entity)
	if tx.Error != nil {
		r.logger.WithError(tx.Error).WithField("entity", r.label).Error("Failed to delete entity")
		return Failure(tx.Error.Error())
	}
	if tx.RowsAffected == 0 {
		return Failure(r.label + " not found")
	}
	return Success(r.label + " deleted successfully")
}

// GetByID returns the record and true, or (nil, false) when it is absent or
// the store fails.
func (r *Repository[T]) GetByID(ctx context.Context, id uint, scopes ...Scope) (*T, bool) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entity T
	err := r.apply(ctx, scopes).First(&entity, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).WithFields(logrus.Fields{"entity": r.label, "id": id}).Error("Failed to get entity by id")
		}
		return nil, false
	}
	return &entity, true
}

// GetAll returns every record, or an empty slice when the store fails.
func (r *Repository[T]) GetAll(ctx context.Context, scopes ...Scope) []T {
	return r.FindAll(ctx, scopes...)
}

// FindSingle returns the first record matching the scopes.
func (r *Repository[T]) FindSingle(ctx context.Context, scopes ...Scope) (*T, bool) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entity T
	err := r.apply(ctx, scopes).First(&entity).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).WithField("entity", r.label).Error("Failed to find entity")
		}
		return nil, false
	}
	return &entity, true
}

// FindAll returns all records matching the scopes.
func (r *Repository[T]) FindAll(ctx context.Context, scopes ...Scope) []T {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entities []T
	if err := r.apply(ctx, scopes).Find(&entities).Error; err != nil {
		r.logger.WithError(err).WithField("entity", r.label).Error("Failed to find entities")
		return nil
	}
	return entities
}

// Paged returns the 1-based page of records after applying the scopes, plus
// the total count before slicing. Degrades to (nil, 0) on store failure.
func (r *Repository[T]) Paged(ctx context.Context, page, size int, scopes ...Scope) ([]T, int64) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if size < 1 {
		return nil, 0
	}

	var model T
	query := r.db.WithContext(ctx).Model(&model)
	for _, scope := range scopes {
		query = scope(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.WithError(err).WithField("entity", r.label).Error("Failed to count entities for paging")
		return nil, 0
	}

	var entities []T
	offset := (page - 1) * size
	if err := query.Offset(offset).Limit(size).Find(&entities).Error; err != nil {
		r.logger.WithError(err).WithField("entity", r.label).Error("Failed to page entities")
		return nil, 0
	}
	return entities, total
}

// Count returns the number of records matching the scopes. Unlike reads it
// surfaces the store error so policy decisions are not made on bad data.
func (r *Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var model T
	query := r.db.WithContext(ctx).Model(&model)
	for _, scope := range scopes {
		query = scope(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.WithError(err).WithField("entity", r.label).Error("Failed to count entities")
		return 0, err
	}
	return total, nil
}

func (r *Repository[T]) apply(ctx context.Context, scopes []Scope) *gorm.DB {
	query := r.db.WithContext(ctx)
	for _, scope := range scopes {
		query = scope(query)
	}
	return query
}
