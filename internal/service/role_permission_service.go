package service

import (
	"context"
	"strconv"
	"time"

	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	rolePermissionKeyPrefix = "role_permission:"
	rolePermissionTTL       = 5 * time.Minute
)

// RolePermissionService answers whether a role may use the system, reading through a Redis cache
type RolePermissionService interface {
	IsEnabled(ctx context.Context, role entity.Role) (bool, error)
	Invalidate(ctx context.Context, role entity.Role)
}

type rolePermissionService struct {
	db                 database.Transactor
	redisClient        *redis.Client
	log                *logrus.Logger
	rolePermissionRepo repository.RolePermissionRepository
}

func NewRolePermissionService(
	db database.Transactor,
	redisClient *redis.Client,
	log *logrus.Logger,
	rolePermissionRepo repository.RolePermissionRepository,
) RolePermissionService {
	return &rolePermissionService{
		db:                 db,
		redisClient:        redisClient,
		log:                log,
		rolePermissionRepo: rolePermissionRepo,
	}
}

// IsEnabled is always true for roles outside the managed set. A missing row means enabled.
// Cache failures fall through to the database.
func (s *rolePermissionService) IsEnabled(ctx context.Context, role entity.Role) (bool, error) {
	if !role.IsManaged() {
		return true, nil
	}

	key := rolePermissionKeyPrefix + string(role)
	cached, err := s.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil:
		if enabled, parseErr := strconv.ParseBool(cached); parseErr == nil {
			return enabled, nil
		}
	case err != redis.Nil:
		s.log.Warnf("Failed to read role permission cache for %s: %+v", role, err)
	}

	permission, err := s.rolePermissionRepo.FindByRole(ctx, s.db.Conn(ctx), role)
	if err != nil {
		s.log.Warnf("Failed to find role permission for %s: %+v", role, err)
		return false, err
	}

	enabled := permission == nil || permission.IsEnabled
	if err := s.redisClient.Set(ctx, key, strconv.FormatBool(enabled), rolePermissionTTL).Err(); err != nil {
		s.log.Warnf("Failed to cache role permission for %s: %+v", role, err)
	}
	return enabled, nil
}

func (s *rolePermissionService) Invalidate(ctx context.Context, role entity.Role) {
	if err := s.redisClient.Del(ctx, rolePermissionKeyPrefix+string(role)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate role permission cache for %s: %+v", role, err)
	}
}
