package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/pkg/crypto"
	"auto-concierge.backend/pkg/jwt"
	"auto-concierge.backend/pkg/logger"
	"auto-concierge.backend/pkg/mailer"
	"auto-concierge.backend/pkg/redis"
)

// AuthUsecase handles dealer and admin authentication
type AuthUsecase struct {
	dealerRepo repositories.DealerRepository
	jwtService *jwt.JWTService
	resetStore *redis.ResetTokenStore
	mail       mailer.Mailer

	adminUsername string
	adminPassword string
	baseURL       string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	dealerRepo repositories.DealerRepository,
	jwtService *jwt.JWTService,
	resetStore *redis.ResetTokenStore,
	mail mailer.Mailer,
	adminUsername, adminPassword, baseURL string,
) *AuthUsecase {
	return &AuthUsecase{
		dealerRepo:    dealerRepo,
		jwtService:    jwtService,
		resetStore:    resetStore,
		mail:          mail,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		baseURL:       baseURL,
	}
}

func invalidCredentials() *domainerrors.AppError {
	return domainerrors.NewAppError(401, domainerrors.CodeInvalidCredentials, "invalid credentials", domainerrors.ErrInvalidCredentials)
}

// DealerLogin authenticates a dealer by id or email plus passcode and
// returns the profile with a signed token
func (u *AuthUsecase) DealerLogin(ctx context.Context, input *entities.DealerLoginInput) (*entities.Dealer, string, error) {
	identifier := input.LoginIdentifier()
	if identifier == "" || input.Passcode == "" {
		return nil, "", domainerrors.BadRequest("identifier and passcode are required")
	}

	dealer, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, "", invalidCredentials()
		}
		return nil, "", err
	}

	if !crypto.VerifyPasscode(input.Passcode, dealer.PasscodeHash) {
		return nil, "", invalidCredentials()
	}

	if dealer.Status == entities.DealerStatusPaused {
		return nil, "", domainerrors.Forbidden("account is paused")
	}
	if !dealer.HasActiveSubscription() {
		return nil, "", domainerrors.PaymentRequired("subscription is not active")
	}

	token, err := u.jwtService.SignDealerToken(dealer.DealerID)
	if err != nil {
		return nil, "", err
	}
	return dealer, token, nil
}

// AdminLogin checks the configured admin credentials and returns a token
func (u *AuthUsecase) AdminLogin(username, password string) (string, error) {
	if u.adminUsername == "" || u.adminPassword == "" {
		return "", domainerrors.Unauthorized("admin login is not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.adminPassword)) == 1
	if !userOK || !passOK {
		return "", invalidCredentials()
	}

	return u.jwtService.SignAdminToken(username)
}

// RequestPasscodeReset issues a single-use reset token and emails the link.
// Always succeeds from the caller's point of view so that dealer ids and
// emails cannot be enumerated.
func (u *AuthUsecase) RequestPasscodeReset(ctx context.Context, identifier string) error {
	if identifier == "" {
		return domainerrors.BadRequest("identifier is required")
	}

	dealer, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if !dealer.Email.Valid {
		logger.Warn(ctx, "passcode reset requested with no email on file", zap.String("dealerId", dealer.DealerID))
		return nil
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := u.resetStore.Save(ctx, token, dealer.DealerID); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/dealer/reset-passcode?token=%s", u.baseURL, token)
	go func(to, dealerID, link string) {
		if err := u.mail.SendPasscodeResetEmail(to, dealerID, link); err != nil {
			logger.Error(context.Background(), "failed to send reset email", zap.String("dealerId", dealerID), zap.Error(err))
		}
	}(dealer.Email.String, dealer.DealerID, resetLink)

	return nil
}

// ResetPasscode consumes a reset token and rewrites the dealer's passcode
func (u *AuthUsecase) ResetPasscode(ctx context.Context, token, newPasscode string) error {
	if token == "" {
		return domainerrors.BadRequest("token is required")
	}
	if len(newPasscode) < 6 {
		return domainerrors.BadRequest("passcode must be at least 6 characters")
	}

	dealerID, err := u.resetStore.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return domainerrors.BadRequest("invalid or expired token")
		}
		return err
	}

	hash, err := crypto.HashPasscode(newPasscode)
	if err != nil {
		return err
	}
	return u.dealerRepo.UpdatePasscode(ctx, dealerID, hash)
}

// GetDealer loads a dealer profile by id
func (u *AuthUsecase) GetDealer(ctx context.Context, dealerID string) (*entities.Dealer, error) {
	return u.dealerRepo.GetByID(ctx, dealerID)
}

func (u *AuthUsecase) findByIdentifier(ctx context.Context, identifier string) (*entities.Dealer, error) {
	dealer, err := u.dealerRepo.GetByID(ctx, identifier)
	if err == nil {
		return dealer, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	return u.dealerRepo.GetByEmail(ctx, identifier)
}
