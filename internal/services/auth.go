package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "project-tracker-backend"

var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenPair is what a successful login or refresh hands back to the
// request layer.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type AuthServiceImpl struct {
	db        *gorm.DB
	sessions  SessionService
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessions SessionService, jwtSecret string, accessTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		db:        db,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !VerifyPassword(user.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair issued, so a stolen token stops working after first use.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.sessions.Resolve(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, userID)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Revoke(ctx, refreshToken)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sessions.Issue(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
