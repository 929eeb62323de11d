package repository

import (
	"context"
	"errors"
	"strings"

	"medisafe/internal/domain/entity"
	domainRepo "medisafe/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, entry *entity.AuditLog) error {
	return db.WithContext(ctx).Omit("User").Create(entry).Error
}

func (r *auditLogRepository) filtered(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&entity.AuditLog{})
	if filter.ActionPrefix != "" {
		q = q.Where("action LIKE ?", escapeLike(filter.ActionPrefix)+"%")
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	return q
}

func (r *auditLogRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter, limit, offset int) ([]entity.AuditLog, int64, error) {
	var total int64
	if err := r.filtered(ctx, db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.AuditLog{}, 0, nil
	}

	var entries []entity.AuditLog
	err := r.filtered(ctx, db, filter).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var entry entity.AuditLog
	if err := db.WithContext(ctx).Preload("User").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so the value matches literally
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
