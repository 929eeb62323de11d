package repository

import (
	"context"
	"testing"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `live\_session.`, escapeLike("live_session."))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestAuditLogFilterSQL(t *testing.T) {
	repo := &auditLogRepository{}
	userID := uuid.New()

	sql := newDryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var count int64
		return repo.filtered(context.Background(), tx, entity.AuditLogFilter{ActionPrefix: "prescription.", UserID: &userID}).Count(&count)
	})

	assert.Contains(t, sql, "action LIKE 'prescription.%'")
	assert.Contains(t, sql, "user_id = '"+userID.String()+"'")
}
