package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"forumhub/internal/config"
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/middleware/auth"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// One-time code purposes used as the CodeStore namespace.
const (
	purposeVerify = "verify"
	purposeReset  = "reset"
)

// Claims is the access-token payload.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RequestVerifyCode(ctx context.Context, email string) error
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(username, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(refreshToken string) (newAccessToken string, err error)
	ValidateToken(tokenString string) (*Claims, error)
	Logout(refreshToken string) error
	ChangePassword(userID, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.PasswordResetRequest) error
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	codes            CodeStore
	mailer           Mailer
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	codes CodeStore,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		codes:            codes,
		mailer:           mailer,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,  // 15 minutes
		refreshTokenTTL:  cfg.RefreshTokenTTL, // 7 days
	}
}

// RequestVerifyCode mails a one-time registration code to the address.
// An address that already has an account is rejected up front so the
// caller does not burn a code on a doomed registration.
func (s *authService) RequestVerifyCode(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return ErrEmailInUse
	}
	return s.sendCode(ctx, purposeVerify, email, "Your registration code")
}

// Register creates the account after the mailed code checks out. The
// new user starts in the "member" group via the repository.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	ok, err := s.codes.Verify(ctx, purposeVerify, req.Email, req.Code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWrongCode
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens upon
// successful login. A deactivated account fails after the password
// check so the response does not leak whether the credentials were
// right.
func (s *authService) Login(username, password string) (string, string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// User not found: dummy compare to keep timing uniform.
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", nil, ErrUserBanned
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return "", "", nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}
	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return "", ErrInvalidToken
	}
	if refreshToken.Revoked {
		return "", ErrInvalidToken
	}
	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(refreshToken.ID)
		return "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(refreshToken.UserID)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", ErrUserBanned
	}
	return s.generateAccessToken(user)
}

// ValidateToken parses and verifies an access token, returning its
// claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the presented refresh token. Revoking an unknown token
// succeeds: the session is gone either way.
func (s *authService) Logout(refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return nil
	}
	return s.refreshTokenRepo.Revoke(refreshToken.ID)
}

// ChangePassword swaps the password after re-checking the old one and
// ends every open session for the account.
func (s *authService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(user.Password, oldPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.refreshTokenRepo.DeleteByUser(userID)
}

// RequestPasswordReset mails a reset code. Unknown addresses succeed
// silently so the endpoint cannot be used to probe for accounts.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(email); err != nil {
		return nil
	}
	return s.sendCode(ctx, purposeReset, email, "Your password reset code")
}

func (s *authService) ResetPassword(ctx context.Context, req dto.PasswordResetRequest) error {
	ok, err := s.codes.Verify(ctx, purposeReset, req.Email, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongCode
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return ErrWrongCode
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.refreshTokenRepo.DeleteByUser(user.ID)
}

func (s *authService) sendCode(ctx context.Context, purpose, email, subject string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.codes.Store(ctx, purpose, email, code); err != nil {
		return err
	}
	body := fmt.Sprintf("Your code is %s. It expires shortly.", code)
	return s.mailer.Send(ctx, email, subject, body)
}

// generateCode draws a 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
