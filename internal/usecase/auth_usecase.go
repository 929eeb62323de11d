package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medisafe/config"
	"medisafe/internal/converter"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/service"
	"medisafe/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the access token of claims and, when given, the paired refresh token
	Logout(ctx context.Context, claims *jwt.Claims, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, principal entity.Principal) (*dto.UserResponse, error)
}

type authUsecase struct {
	db              database.Transactor
	log             *logrus.Logger
	userRepo        repository.UserRepository
	profileRepo     repository.UserProfileRepository
	patientRepo     repository.PatientRepository
	jwtService      *jwt.JWTService
	tokens          *service.TokenStore
	rolePermissions service.RolePermissionService
	activity        *service.ActivityFeed
	audit           service.AuditService
	superAdmin      config.SuperAdminConfig
	now             func() time.Time
}

func NewAuthUsecase(
	db database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	tokens *service.TokenStore,
	rolePermissions service.RolePermissionService,
	activity *service.ActivityFeed,
	audit service.AuditService,
	superAdmin config.SuperAdminConfig,
) AuthUsecase {
	return &authUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		patientRepo:     patientRepo,
		jwtService:      jwtService,
		tokens:          tokens,
		rolePermissions: rolePermissions,
		activity:        activity,
		audit:           audit,
		superAdmin:      superAdmin,
		now:             time.Now,
	}
}

// Register is the patient self-signup: User, UserProfile and Patient in one transaction
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	user := &entity.User{
		Username: strings.TrimSpace(req.Username),
		Email:    email,
		Password: string(hashedPassword),
		Role:     entity.RolePatient,
		Status:   true,
		IsActive: true,
	}

	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := createUserRow(ctx, tx, u.userRepo, u.log, user); err != nil {
			return err
		}

		profile := &entity.UserProfile{
			UserID:    user.ID,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     &email,
		}
		if err := u.profileRepo.Save(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create profile: %+v", err)
			return err
		}
		user.Profile = profile

		if err := u.patientRepo.Create(ctx, tx, &entity.Patient{UserID: user.ID}); err != nil {
			u.log.Warnf("Failed to create patient record: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	principal := entity.AuthenticatedPrincipal(user.ID, user.Username, user.Email, user.Role)
	u.audit.LogCreate(ctx, u.db.Conn(ctx), principal, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]string{"username": user.Username})
	return converter.UserToResponse(user), nil
}

// Login accepts a username or an email. The configured super admin is checked first.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	identifier := strings.TrimSpace(req.Username)

	if u.superAdmin.Enabled() && identifier == u.superAdmin.Username {
		if err := bcrypt.CompareHashAndPassword([]byte(u.superAdmin.PasswordHash), []byte(req.Password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		tokens, err := u.issueTokens(ctx, jwt.Subject{
			Username:   u.superAdmin.Username,
			Role:       string(entity.RoleAdmin),
			SuperAdmin: true,
		})
		if err != nil {
			return nil, err
		}
		principal := entity.SuperAdminPrincipal(u.superAdmin.Username)
		tokens.User = converter.PrincipalToResponse(principal)
		u.activity.Record(ctx, service.LoginEvent(principal.Username, "Super Admin signed in", u.now()))
		return tokens, nil
	}

	user, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrAccountDisabled
	}
	if err := u.ensureRoleEnabled(ctx, user.Role); err != nil {
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, subjectOf(user))
	if err != nil {
		return nil, err
	}

	conn := u.db.Conn(ctx)
	if err := u.userRepo.TouchLastLogin(ctx, conn, user.ID); err != nil {
		u.log.Warnf("Failed to record last login of user %s: %+v", user.ID, err)
	}

	principal := entity.AuthenticatedPrincipal(user.ID, user.Username, user.Email, user.Role)
	u.audit.LogCreate(ctx, conn, principal, entity.AuditActionUserLogin, "user", user.ID.String(), nil)
	u.activity.Record(ctx, service.LoginEvent(user.Username, fmt.Sprintf("%s signed in as %s", user.FullName(), user.Role), u.now()))

	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, claims *jwt.Claims, refreshToken string) error {
	keys := []string{claims.StoreKey()}
	if refreshToken != "" {
		refresh, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && refresh.TokenType == jwt.RefreshToken && refresh.UserID == claims.UserID && refresh.SuperAdmin == claims.SuperAdmin {
			keys = append(keys, refresh.StoreKey())
		}
	}
	if err := u.tokens.Revoke(ctx, keys...); err != nil {
		return err
	}

	if !claims.SuperAdmin {
		principal := entity.AuthenticatedPrincipal(claims.UserID, claims.Username, claims.Email, entity.Role(claims.Role))
		u.audit.LogCreate(ctx, u.db.Conn(ctx), principal, entity.AuditActionUserLogout, "user", claims.UserID.String(), nil)
	}
	u.activity.Record(ctx, service.LogoutEvent(claims.Username, "Signed out", u.now()))
	return nil
}

// RefreshToken rotates the refresh token and re-checks that the account may still sign in
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	key := claims.StoreKey()
	exists, err := u.tokens.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	subject := claims.TokenSubject()
	var user *entity.User
	if !subject.SuperAdmin {
		user, err = u.userRepo.FindByID(ctx, u.db.Conn(ctx), claims.UserID)
		if err != nil {
			u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
			return nil, err
		}
		if user == nil || !user.CanLogin() {
			return nil, ErrAccountDisabled
		}
		if err := u.ensureRoleEnabled(ctx, user.Role); err != nil {
			return nil, err
		}
		subject = subjectOf(user)
	}

	// Delete old refresh token
	if err := u.tokens.Revoke(ctx, key); err != nil {
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		tokens.User = converter.UserToResponse(user)
	}
	return tokens, nil
}

func (u *authUsecase) Me(ctx context.Context, principal entity.Principal) (*dto.UserResponse, error) {
	userID, ok := principal.UserID()
	if !ok {
		return converter.PrincipalToResponse(principal), nil
	}

	user, err := u.userRepo.FindByID(ctx, u.db.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	response := converter.UserToResponse(user)
	return response, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, subject jwt.Subject) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(subject)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(subject)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	// Store tokens in Redis
	if err := u.tokens.Save(ctx, jwt.StoreKey(jwt.AccessToken, subject, accessTokenID), u.jwtService.GetAccessExpiry()); err != nil {
		return nil, err
	}
	if err := u.tokens.Save(ctx, jwt.StoreKey(jwt.RefreshToken, subject, refreshTokenID), u.jwtService.GetRefreshExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) ensureRoleEnabled(ctx context.Context, role entity.Role) error {
	enabled, err := u.rolePermissions.IsEnabled(ctx, role)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrRoleDisabled
	}
	return nil
}

func (u *authUsecase) findByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	conn := u.db.Conn(ctx)
	if strings.Contains(identifier, "@") {
		user, err := u.userRepo.FindByEmail(ctx, conn, identifier)
		if err != nil {
			u.log.Warnf("Failed to find user by email: %+v", err)
		}
		return user, err
	}
	user, err := u.userRepo.FindByUsername(ctx, conn, identifier)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
	}
	return user, err
}

// createUserRow maps unique violations on username and email to conflicts
func createUserRow(ctx context.Context, tx *gorm.DB, userRepo repository.UserRepository, log *logrus.Logger, user *entity.User) error {
	if err := userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return ErrUsernameTaken
		}
		if isDuplicateKeyError(err, "email") {
			return ErrEmailTaken
		}
		log.Warnf("Failed to create user: %+v", err)
		return err
	}
	return nil
}

func subjectOf(user *entity.User) jwt.Subject {
	return jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}
