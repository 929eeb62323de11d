package usecase

import (
	"strings"
	"sync/atomic"
	"time"

	"medisafe/internal/domain/entity"
	"medisafe/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := entity.ParseDate(value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	date, err := parseDate(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func parseClock(value string) (string, error) {
	clock, err := entity.ParseClock(value)
	if err != nil {
		return "", ErrInvalidTimeFormat
	}
	return clock, nil
}

// trimmed returns nil for a missing or blank value
func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		return nil
	}
	return &s
}

// actingUser returns the users row id of principal or ErrForbidden for the super admin
func actingUser(principal entity.Principal) (uuid.UUID, error) {
	id, ok := principal.UserID()
	if !ok {
		return uuid.Nil, ErrForbidden
	}
	return id, nil
}

// removeStoredFiles deletes files whose rows are already gone and returns how many went.
// Failures are only logged.
func removeStoredFiles(files *storage.FileStorage, log *logrus.Logger, paths []string) int {
	var removed int64
	p := pool.New().WithMaxGoroutines(cleanupFileWorkers)
	for _, path := range paths {
		path := path
		p.Go(func() {
			if err := files.Remove(path); err != nil {
				log.Warnf("Failed to remove file %s: %+v", path, err)
				return
			}
			atomic.AddInt64(&removed, 1)
		})
	}
	p.Wait()
	return int(removed)
}
