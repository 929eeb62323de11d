package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medisafe/config"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/delivery/http/handler"
	"medisafe/internal/delivery/http/middleware"
	"medisafe/internal/domain/entity"
	"medisafe/internal/service"
	servicemocks "medisafe/internal/service/mocks"
	"medisafe/internal/usecase/mocks"
	"medisafe/pkg/jwt"
	"medisafe/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	router        *mux.Router
	jwt           *jwt.JWTService
	tokens        *service.TokenStore
	permissions   *servicemocks.RolePermissionService
	appointments  *mocks.AppointmentUsecase
	prescriptions *mocks.PrescriptionUsecase
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &routerFixture{
		jwt:           jwt.NewJWTService(config.JWTConfig{Secret: "router-secret", AccessExpiry: time.Hour, RefreshExpiry: 2 * time.Hour}),
		tokens:        service.NewTokenStore(client, log),
		permissions:   new(servicemocks.RolePermissionService),
		appointments:  new(mocks.AppointmentUsecase),
		prescriptions: new(mocks.PrescriptionUsecase),
	}

	v := validator.NewValidator()
	handlers := Handlers{
		Appointment:  handler.NewAppointmentHandler(f.appointments, v, log),
		Prescription: handler.NewPrescriptionHandler(f.prescriptions, v, log),
	}
	f.router = NewRouter(
		handlers,
		middleware.NewAuthMiddleware(f.jwt, f.tokens, log),
		middleware.NewCORSMiddleware(),
		f.permissions,
		log,
	).Setup()
	return f
}

// login issues a live access token for subject
func (f *routerFixture) login(t *testing.T, subject jwt.Subject) string {
	t.Helper()
	token, tokenID, err := f.jwt.GenerateAccessToken(subject)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(context.Background(), jwt.StoreKey(jwt.AccessToken, subject, tokenID), time.Hour))
	return token
}

func (f *routerFixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Message
}

func TestHealthIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestProtectedRoutesNeedALiveToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/appointments", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	subject := jwt.Subject{UserID: uuid.New(), Username: "maria", Role: string(entity.RolePatient)}
	token, _, err := f.jwt.GenerateAccessToken(subject)
	require.NoError(t, err)

	rec = f.do(http.MethodGet, "/api/v1/appointments", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", message(t, rec))
}

func TestPatientRoutes(t *testing.T) {
	f := newRouterFixture(t)
	subject := jwt.Subject{UserID: uuid.New(), Username: "maria", Email: "maria@example.com", Role: string(entity.RolePatient)}
	token := f.login(t, subject)
	patient := entity.AuthenticatedPrincipal(subject.UserID, subject.Username, subject.Email, entity.RolePatient)

	f.permissions.On("IsEnabled", mock.Anything, entity.RolePatient).Return(true, nil)
	f.appointments.On("ListMine", mock.Anything, patient).Return([]dto.AppointmentResponse{}, nil)

	rec := f.do(http.MethodGet, "/api/v1/appointments", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/admin/appointments", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/prescriptions/"+uuid.NewString()+"/sign", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.appointments.AssertExpectations(t)
}

func TestDoctorListsOwnSchedule(t *testing.T) {
	f := newRouterFixture(t)
	subject := jwt.Subject{UserID: uuid.New(), Username: "drcruz", Email: "cruz@example.com", Role: string(entity.RoleDoctor)}
	token := f.login(t, subject)
	doctor := entity.AuthenticatedPrincipal(subject.UserID, subject.Username, subject.Email, entity.RoleDoctor)

	f.permissions.On("IsEnabled", mock.Anything, entity.RoleDoctor).Return(true, nil)
	f.appointments.On("ListMine", mock.Anything, doctor).
		Return([]dto.AppointmentResponse{{ID: uuid.New()}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/appointments", token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// booking stays patient-only
	rec = f.do(http.MethodPost, "/api/v1/appointments", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.appointments.AssertExpectations(t)
}

func TestDisabledRoleIsRejectedEverywhere(t *testing.T) {
	f := newRouterFixture(t)
	token := f.login(t, jwt.Subject{UserID: uuid.New(), Username: "drcruz", Role: string(entity.RoleDoctor)})
	f.permissions.On("IsEnabled", mock.Anything, entity.RoleDoctor).Return(false, nil)

	rec := f.do(http.MethodGet, "/api/v1/prescriptions/"+uuid.NewString(), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Your role has been disabled by the administrator", message(t, rec))
	f.prescriptions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestPrescriptionDeleteIsSuperAdminOnly(t *testing.T) {
	f := newRouterFixture(t)
	id := uuid.New()
	path := "/api/v1/admin/prescriptions/" + id.String()

	adminToken := f.login(t, jwt.Subject{UserID: uuid.New(), Username: "clerk", Role: string(entity.RoleAdmin)})
	rec := f.do(http.MethodDelete, path, adminToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rootToken := f.login(t, jwt.Subject{Username: "root", Role: string(entity.RoleAdmin), SuperAdmin: true})
	f.prescriptions.On("Delete", mock.Anything, entity.SuperAdminPrincipal("root"), id).Return(nil).Once()
	rec = f.do(http.MethodDelete, path, rootToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	f.prescriptions.AssertExpectations(t)
	// admins never consult role permissions
	f.permissions.AssertNotCalled(t, "IsEnabled", mock.Anything, mock.Anything)
}
