package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/zerodivida/zerodivida/internal/observability"
	"github.com/zerodivida/zerodivida/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo    Repository
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService constructs a new Service.
func NewService(repo Repository, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, metrics: metrics}
}

// Authenticate validates a login attempt and returns the user id. The
// identifier is an email when it contains '@', otherwise a CPF. A successful
// login against a legacy plaintext credential upgrades it to a bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, login, password string) (int64, error) {
	if login == "" || password == "" {
		return 0, shared.ErrMissingField
	}

	var user *User
	var err error
	if strings.Contains(login, "@") {
		user, err = s.repo.FindByEmail(ctx, login)
	} else {
		user, err = s.repo.FindByCPF(ctx, login)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, shared.ErrUserNotFound
		}
		return 0, err
	}

	if !user.Credential.Matches(password) {
		return 0, shared.ErrInvalidCredential
	}

	if user.Credential.Kind() == CredentialLegacy {
		s.migrateCredential(ctx, user.ID, password)
	}
	return user.ID, nil
}

// migrateCredential replaces a verified legacy credential with its bcrypt
// hash. The login has already succeeded, so a failure here is logged and
// dropped rather than surfaced to the caller; the next successful login
// retries the upgrade.
func (s *Service) migrateCredential(ctx context.Context, userID int64, password string) {
	cred, err := HashPassword(password)
	if err != nil {
		s.logger.Warn("credential migration hash failed", slog.Int64("user_id", userID), slog.Any("error", err))
		s.metrics.CredentialMigration("error")
		return
	}
	if err := s.repo.UpdateCredential(ctx, userID, cred); err != nil {
		s.logger.Warn("credential migration write failed", slog.Int64("user_id", userID), slog.Any("error", err))
		s.metrics.CredentialMigration("failure")
		return
	}
	s.logger.Info("legacy credential migrated", slog.Int64("user_id", userID))
	s.metrics.CredentialMigration("success")
}

// RegisterInput carries the registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	CPF      string
	Age      int
	Password string
}

// Register creates a new account with a hashed credential. The duplicate
// pre-check gives the friendly first-line error; the unique constraints on
// email and cpf close the check-then-insert race underneath it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	if in.Name == "" || in.Email == "" || in.CPF == "" || in.Password == "" || in.Age <= 0 {
		return 0, shared.ErrMissingField
	}

	exists, err := s.repo.ExistsByEmailOrCPF(ctx, in.Email, in.CPF)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, shared.ErrDuplicateUser
	}

	cred, err := HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	return s.repo.CreateUser(ctx, NewUser{
		Name:       in.Name,
		Email:      in.Email,
		CPF:        in.CPF,
		Age:        in.Age,
		Credential: cred,
	})
}

// Profile returns the public profile for a user id.
func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}
