package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"tikify/internal/entity"
	"tikify/internal/repo/persistent"
	"tikify/pkg/jwt"
	"tikify/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	GenerateInvite() (string, error)
	Register(username, password, inviteCode string) error
	Login(username, password string) (string, error)
}

type authUseCase struct {
	accountRepo persistent.AccountRepository
	jwtService  *jwt.Service
	logger      *logger.Logger
}

func NewAuthUseCase(accountRepo persistent.AccountRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func (uc *authUseCase) GenerateInvite() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	code := base64.RawURLEncoding.EncodeToString(buf)

	if err := uc.accountRepo.CreateInvite(code); err != nil {
		return "", fmt.Errorf("failed to store invite code: %w", err)
	}
	return code, nil
}

// Register consumes a single-use invite code and creates the account. The
// invite is burned before the account insert; a duplicate username does not
// refund it, matching the original service's behavior.
func (uc *authUseCase) Register(username, password, inviteCode string) error {
	if err := uc.accountRepo.ConsumeInvite(inviteCode); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uc.accountRepo.CreateAccount(account); err != nil {
		return err
	}

	uc.logger.Info("registered account %s", username)
	return nil
}

func (uc *authUseCase) Login(username, password string) (string, error) {
	account, err := uc.accountRepo.FindAccountByUsername(username)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			return "", entity.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(account.Username, "viewer")
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
