package users

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/nstepanov-hw/shop-api/internal/hash"
	"github.com/nstepanov-hw/shop-api/internal/logging"
	"github.com/nstepanov-hw/shop-api/internal/models"
	"github.com/nstepanov-hw/shop-api/internal/store"
)

var (
	ErrDuplicateUsername = errors.New("username is already taken")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)

// PasswordValidator checks a candidate plaintext password. Registration
// requires every configured validator to pass.
type PasswordValidator func(password string) bool

func PasswordLongerThan8(password string) bool {
	return len(password) > 8
}

func PasswordHasDigit(password string) bool {
	for _, r := range password {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

type RegisterInfo struct {
	Username  string
	Name      string
	Birthdate time.Time
	Password  string
}

type Service struct {
	Store              *store.UserStore
	PasswordValidators []PasswordValidator
}

func NewService(s *store.UserStore, validators ...PasswordValidator) *Service {
	if len(validators) == 0 {
		validators = []PasswordValidator{PasswordLongerThan8}
	}
	return &Service{Store: s, PasswordValidators: validators}
}

// Register creates a user with role "user". Passwords are stored as bcrypt
// hashes, never plaintext.
func (s *Service) Register(ctx context.Context, info RegisterInfo) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.register")

	for _, validate := range s.PasswordValidators {
		if !validate(info.Password) {
			l.Warn("register_failed", "reason", "invalid_password", "username", info.Username)
			return nil, ErrInvalidPassword
		}
	}

	pwHash, err := hash.HashPassword(info.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     info.Username,
		Name:         info.Name,
		Birthdate:    info.Birthdate,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Store.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			l.Warn("register_failed", "reason", "username_taken", "username", info.Username)
			return nil, fmt.Errorf("%q: %w", info.Username, ErrDuplicateUsername)
		}
		l.Error("register_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	l.Info("register_success", "uid", user.ID, "username", user.Username)
	return &user, nil
}

func (s *Service) GetByID(ctx context.Context, uid uint) (*models.User, error) {
	return s.Store.GetByID(ctx, uid)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.Store.GetByUsername(ctx, username)
}

// GrantAdmin promotes the user to admin; the upgrade is not reversible here.
func (s *Service) GrantAdmin(ctx context.Context, uid uint) error {
	l := logging.FromContext(ctx).With("svc", "users.grant_admin")
	if err := s.Store.SetRole(ctx, uid, models.RoleAdmin); err != nil {
		l.Warn("grant_admin_failed", "uid", uid, "error", err)
		return err
	}
	l.Info("grant_admin_success", "uid", uid)
	return nil
}

// Authenticate resolves the username and compares the password against the
// stored bcrypt hash. Unknown users and mismatches are indistinguishable to
// the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// AuthorizeAdmin passes the user through only when it holds the admin role.
func (s *Service) AuthorizeAdmin(user *models.User) (*models.User, error) {
	if user == nil || user.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return user, nil
}
