package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sallyo/internal/models/db_models"
	"sallyo/internal/models/request_models"
	"sallyo/internal/models/response_models"
	"sallyo/internal/repositories"
	"sallyo/pkg/utils"
)

const defaultRole = "user"

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error)
	LoginWithGoogle(ctx context.Context, request request_models.GoogleLoginRequest) (response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Me(ctx context.Context, accountID uuid.UUID) (response_models.AccountResponse, error)
}

type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	prefsRepo   repositories.PreferencesRepository
	google      GoogleVerifier
	tokens      TokenConfig
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	prefsRepo repositories.PreferencesRepository,
	google GoogleVerifier,
	tokens TokenConfig,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		prefsRepo:   prefsRepo,
		google:      google,
		tokens:      tokens,
		logger:      logger,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AccountLoginResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil || account.PasswordHash == "" {
		return response_models.AccountLoginResponse{}, utils.ErrAuthenticationFailed
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrAuthenticationFailed
	}

	return a.issue(account, false)
}

// LoginWithGoogle signs in with a Google ID token. Unknown subjects are linked
// to an existing account with the same verified email, or get a new account.
// A new account keeps the Google email only when it is verified and free.
func (a *AccountService) LoginWithGoogle(ctx context.Context, request request_models.GoogleLoginRequest) (response_models.AccountLoginResponse, error) {
	identity, err := a.google.Verify(ctx, request.IDToken)
	if err != nil {
		a.logger.Info("google sign-in rejected", zap.Error(err))
		return response_models.AccountLoginResponse{}, utils.ErrAuthenticationFailed
	}

	account, err := a.accountRepo.FindByGoogleSubject(ctx, identity.Subject)
	if err != nil {
		return response_models.AccountLoginResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account != nil {
		return a.issue(account, false)
	}

	var email *string
	if identity.Email != "" {
		account, err = a.accountRepo.FindByEmail(ctx, identity.Email)
		if err != nil {
			return response_models.AccountLoginResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if account != nil && !identity.EmailVerified {
			// unverified address owned by someone else: new account, no email
			account = nil
		} else if account == nil && identity.EmailVerified {
			email = &identity.Email
		}
	}
	subject := identity.Subject
	if account != nil {
		account.GoogleSubject = &subject
		if err := a.accountRepo.Update(ctx, account); err != nil {
			return response_models.AccountLoginResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		return a.issue(account, false)
	}

	account = &db_models.Account{
		Name:          identity.Name,
		Email:         email,
		GoogleSubject: &subject,
		Role:          defaultRole,
	}
	if err := a.accountRepo.InsertTx(account, ctx); err != nil {
		return response_models.AccountLoginResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	a.logger.Info("account created from google sign-in", zap.String("account_id", account.ID.String()))
	return a.issue(account, true)
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        &request.Email,
		PasswordHash: hashedPassword,
		Role:         defaultRole,
	}

	if err := a.accountRepo.InsertTx(newAccount, ctx); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return nil
}

func (a *AccountService) Me(ctx context.Context, accountID uuid.UUID) (response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return response_models.AccountResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	prefs, err := a.prefsRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return response_models.AccountResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return response_models.AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Email:     account.EmailAddress(),
		Role:      account.Role,
		Onboarded: prefs != nil,
	}, nil
}

func (a *AccountService) issue(account *db_models.Account, isNew bool) (response_models.AccountLoginResponse, error) {
	token, err := utils.CreateToken(a.tokens.Secret, account.ID, account.Role, a.tokens.TTL)
	if err != nil {
		return response_models.AccountLoginResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return response_models.AccountLoginResponse{
		Token:     token,
		AccountID: account.ID.String(),
		Name:      account.Name,
		IsNew:     isNew,
	}, nil
}
