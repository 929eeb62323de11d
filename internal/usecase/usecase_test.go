package usecase

import (
	"io"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func patientPrincipal(id uuid.UUID) entity.Principal {
	return entity.AuthenticatedPrincipal(id, "juan", "juan@example.com", entity.RolePatient)
}

func doctorPrincipal(id uuid.UUID) entity.Principal {
	return entity.AuthenticatedPrincipal(id, "drcruz", "cruz@example.com", entity.RoleDoctor)
}

func adminPrincipal() entity.Principal {
	return entity.AuthenticatedPrincipal(uuid.New(), "admin", "admin@example.com", entity.RoleAdmin)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func strPtr(s string) *string {
	return &s
}
