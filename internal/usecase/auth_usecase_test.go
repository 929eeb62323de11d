package usecase

import (
	"context"
	"testing"
	"time"

	"medisafe/config"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository/mocks"
	"medisafe/internal/infrastructure/database/dbtest"
	"medisafe/internal/service"
	servicemocks "medisafe/internal/service/mocks"
	"medisafe/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	tx          *dbtest.Transactor
	userRepo    *mocks.UserRepository
	profileRepo *mocks.UserProfileRepository
	patientRepo *mocks.PatientRepository
	permissions *servicemocks.RolePermissionService
	jwtService  *jwt.JWTService
	tokens      *service.TokenStore
	activity    *service.ActivityFeed
	usecase     AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	superHash, err := bcrypt.GenerateFromPassword([]byte("rootpass"), bcrypt.MinCost)
	require.NoError(t, err)

	log := newTestLogger()
	f := &authFixture{
		tx:          &dbtest.Transactor{},
		userRepo:    &mocks.UserRepository{},
		profileRepo: &mocks.UserProfileRepository{},
		patientRepo: &mocks.PatientRepository{},
		permissions: &servicemocks.RolePermissionService{},
		jwtService: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		}),
		tokens:   service.NewTokenStore(client, log),
		activity: service.NewActivityFeed(client, log, 10, time.Millisecond),
	}
	f.usecase = NewAuthUsecase(f.tx, log, f.userRepo, f.profileRepo, f.patientRepo, f.jwtService, f.tokens,
		f.permissions, f.activity, (&servicemocks.AuditService{}).Permissive(),
		config.SuperAdminConfig{Username: "root", PasswordHash: string(superHash)})
	return f
}

func activeUser(t *testing.T, role entity.Role) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:       uuid.New(),
		Username: "juan",
		Email:    "juan@example.com",
		Password: string(hash),
		Role:     role,
		Status:   true,
		IsActive: true,
	}
}

func (f *authFixture) storedKey(t *testing.T, token string) string {
	t.Helper()
	claims, err := f.jwtService.ValidateToken(token)
	require.NoError(t, err)
	return claims.StoreKey()
}

func TestRegisterCreatesUserProfileAndPatient(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()

	f.userRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "juan" && u.Role == entity.RolePatient && u.Password != "secret123"
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*entity.User).ID = userID
	}).Return(nil).Once()
	f.profileRepo.On("Save", mock.Anything, mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.UserID == userID && p.FirstName == "Juan"
	})).Return(nil).Once()
	f.patientRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *entity.Patient) bool {
		return p.UserID == userID
	})).Return(nil).Once()

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: " juan ", Email: "juan@example.com", Password: "secret123", FirstName: "Juan", LastName: "Dela Cruz",
	})

	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", resp.FullName)
	assert.Equal(t, 1, f.tx.Commits)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"}).Once()

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "juan", Email: "juan@example.com", Password: "secret123", FirstName: "Juan", LastName: "Cruz",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 1, f.tx.Rollbacks)
	f.profileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterEmailDifferingOnlyInCase(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email_lower"}).Once()

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "juan2", Email: "Juan@Example.com", Password: "secret123", FirstName: "Juan", LastName: "Cruz",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, f.tx.Rollbacks)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	for _, identifier := range []string{"juan", "juan@example.com"} {
		t.Run(identifier, func(t *testing.T) {
			f := newAuthFixture(t)
			user := activeUser(t, entity.RolePatient)
			if identifier == "juan" {
				f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(user, nil).Once()
			} else {
				f.userRepo.On("FindByEmail", mock.Anything, mock.Anything, "juan@example.com").Return(user, nil).Once()
			}
			f.permissions.On("IsEnabled", mock.Anything, entity.RolePatient).Return(true, nil).Once()
			f.userRepo.On("TouchLastLogin", mock.Anything, mock.Anything, user.ID).Return(nil).Once()

			resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: identifier, Password: "secret123"})

			require.NoError(t, err)
			assert.Equal(t, int64(900), resp.ExpiresIn)
			assert.Equal(t, "juan", resp.User.Username)

			ok, err := f.tokens.Exists(context.Background(), f.storedKey(t, resp.AccessToken))
			require.NoError(t, err)
			assert.True(t, ok)
			ok, _ = f.tokens.Exists(context.Background(), f.storedKey(t, resp.RefreshToken))
			assert.True(t, ok)

			events, err := f.activity.Recent(context.Background(), 10)
			require.NoError(t, err)
			assert.Len(t, events, 1)
		})
	}
}

func TestLoginFailures(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(activeUser(t, entity.RolePatient), nil).Once()

		_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "juan", Password: "nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "ghost").Return(nil, nil).Once()

		_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "secret123"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := activeUser(t, entity.RoleNurse)
		user.IsActive = false
		f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(user, nil).Once()

		_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "juan", Password: "secret123"})

		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("role disabled", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(activeUser(t, entity.RoleLabTech), nil).Once()
		f.permissions.On("IsEnabled", mock.Anything, entity.RoleLabTech).Return(false, nil).Once()

		_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "juan", Password: "secret123"})

		assert.ErrorIs(t, err, ErrRoleDisabled)
	})
}

func TestSuperAdminLoginSkipsDatabase(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "root", Password: "rootpass"})

	require.NoError(t, err)
	assert.True(t, resp.User.SuperAdmin)
	claims, err := f.jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.SuperAdmin)
	assert.Contains(t, claims.StoreKey(), "superadmin")
	f.userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything, mock.Anything)

	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "root", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture(t)
	user := activeUser(t, entity.RoleDoctor)
	f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(user, nil).Once()
	f.userRepo.On("FindByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)
	f.userRepo.On("TouchLastLogin", mock.Anything, mock.Anything, user.ID).Return(nil)
	f.permissions.On("IsEnabled", mock.Anything, entity.RoleDoctor).Return(true, nil)

	login, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "juan", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	ok, _ := f.tokens.Exists(context.Background(), f.storedKey(t, login.RefreshToken))
	assert.False(t, ok)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t)
	user := activeUser(t, entity.RolePatient)
	f.userRepo.On("FindByUsername", mock.Anything, mock.Anything, "juan").Return(user, nil).Once()
	f.userRepo.On("TouchLastLogin", mock.Anything, mock.Anything, user.ID).Return(nil).Once()
	f.permissions.On("IsEnabled", mock.Anything, entity.RolePatient).Return(true, nil).Once()

	login, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "juan", Password: "secret123"})
	require.NoError(t, err)
	claims, err := f.jwtService.ValidateToken(login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(context.Background(), claims, login.RefreshToken))

	ok, _ := f.tokens.Exists(context.Background(), f.storedKey(t, login.AccessToken))
	assert.False(t, ok)
	ok, _ = f.tokens.Exists(context.Background(), f.storedKey(t, login.RefreshToken))
	assert.False(t, ok)
}

func TestMeForSuperAdmin(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.usecase.Me(context.Background(), entity.SuperAdminPrincipal("root"))

	require.NoError(t, err)
	assert.Equal(t, "root", resp.Username)
	assert.True(t, resp.SuperAdmin)
}
