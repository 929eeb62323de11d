package usecase

import (
	"context"

	"medisafe/internal/converter"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultAuditLogPageSize = 20
	maxAuditLogPageSize     = 200
)

// AuditLogUsecase is the read side of the audit trail; writes go through service.AuditService
type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           database.Transactor
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db database.Transactor,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = defaultAuditLogPageSize
	case limit > maxAuditLogPageSize:
		limit = maxAuditLogPageSize
	}

	filter := entity.AuditLogFilter{ActionPrefix: req.Action}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, ErrInvalidID
		}
		filter.UserID = &userID
	}

	entries, total, err := u.auditLogRepo.FindAll(ctx, u.db.Conn(ctx), filter, limit, (page-1)*limit)
	if err != nil {
		u.log.WithField("action", req.Action).Errorf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(entries),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	entry, err := u.auditLogRepo.FindByID(ctx, u.db.Conn(ctx), id)
	if err != nil {
		u.log.Errorf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrAuditLogNotFound
	}
	return converter.AuditLogToResponse(entry), nil
}
