package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"octopus/internal/logs"
	"octopus/internal/models"
)

// ChallengeTTL — срок жизни кода второго фактора.
const ChallengeTTL = 10 * time.Minute

// UserStore — минимальный контракт по пользователям для auth-слоя.
// Отсутствие записи — (nil, nil).
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// ChallengeStore — хранилище одноразовых 2FA-записей.
type ChallengeStore interface {
	// Replace атомарно заменяет живую запись пользователя (delete+insert
	// в одной транзакции): двух одновременных кодов быть не может.
	Replace(ctx context.Context, c *models.TwoFactorChallenge) error
	GetByToken(ctx context.Context, token string) (*models.TwoFactorChallenge, error)
	// Consume удаляет запись по token+code и сообщает, была ли она ещё
	// жива — защита от повторного использования кода.
	Consume(ctx context.Context, token, code string) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type Service struct {
	users      UserStore
	challenges ChallengeStore
	tokens     *TokenService
}

func NewService(users UserStore, challenges ChallengeStore, tokens *TokenService) *Service {
	return &Service{users: users, challenges: challenges, tokens: tokens}
}

type LoginResult struct {
	AccessToken string
	User        *models.User

	TwoFactorRequired bool
	TwoFactorToken    string
	ExpiresAt         time.Time
}

// Login проверяет пароль и либо выдаёт access-токен, либо (при включённом
// втором факторе) выпускает challenge, гася предыдущий.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !CheckPassword(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	if u.TwoFactorEnabled {
		token, err := opaqueToken()
		if err != nil {
			return nil, err
		}
		code, err := numericCode()
		if err != nil {
			return nil, err
		}
		expires := time.Now().UTC().Add(ChallengeTTL)
		if err := s.challenges.Replace(ctx, &models.TwoFactorChallenge{
			UserID:    u.ID,
			Token:     token,
			Code:      code,
			ExpiresAt: expires,
		}); err != nil {
			return nil, err
		}
		// Почтовой доставки нет — код уходит в лог.
		logs.Logger.Infof("2FA code for %s: %s", u.Email, code)
		return &LoginResult{
			TwoFactorRequired: true,
			TwoFactorToken:    token,
			ExpiresAt:         expires,
		}, nil
	}

	access, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, User: u}, nil
}

// VerifyTwoFactor завершает логин по паре token+code.
// Исходы: ErrChallengeNotFound / ErrChallengeExpired (запись удаляется) /
// ErrCodeMismatch; успех гасит запись и выдаёт access-токен.
func (s *Service) VerifyTwoFactor(ctx context.Context, token, code string) (*LoginResult, error) {
	rec, err := s.challenges.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrChallengeNotFound
	}
	if rec.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.challenges.Delete(ctx, rec.ID)
		return nil, ErrChallengeExpired
	}
	if rec.Code != code {
		return nil, ErrCodeMismatch
	}

	consumed, err := s.challenges.Consume(ctx, token, code)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Кто-то успел погасить запись между Get и Consume.
		return nil, ErrChallengeNotFound
	}

	u, err := s.users.GetByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	access, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, User: u}, nil
}

type RegisterInput struct {
	Email            string
	FullName         string
	Password         string
	Role             models.UserRole
	IsActive         bool
	TwoFactorEnabled bool
}

// Register создаёт пользователя; пароль не короче 6 символов,
// email уникален.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if len(in.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		Email:            in.Email,
		FullName:         in.FullName,
		HashedPassword:   hash,
		Role:             in.Role,
		IsActive:         in.IsActive,
		TwoFactorEnabled: in.TwoFactorEnabled,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// opaqueToken — 32 hex-символа из crypto/rand.
func opaqueToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// numericCode — равномерный шестизначный код, ведущие нули сохраняются.
func numericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
