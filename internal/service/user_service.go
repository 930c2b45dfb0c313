package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"forum/internal/auth"
	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subjectID uint) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

var (
	// ErrUnknownEmail is returned by Login when no identity has the email.
	ErrUnknownEmail = &models.AppError{Status: fiber.StatusBadRequest, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	// ErrWrongPassword is returned by Login when the password does not match.
	ErrWrongPassword = &models.AppError{Status: fiber.StatusUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	// ErrDuplicateEmail is returned by Register for a taken email.
	ErrDuplicateEmail = models.NewConflictError("User already exists")
)

type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is an authenticated identity with its freshly issued token.
type Session struct {
	User  *models.User
	Token string
}

func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts a bare address only. Display-name forms such as
// "Alice <a@x.com>" would otherwise register the same mailbox twice.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register creates an identity and signs a token for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := cleanText(in.Name)
	email := normalizeEmail(in.Email)

	if tooShort(name, MinNameLength) {
		return nil, models.NewValidationError("Name must be at least 3 characters")
	}
	if !validEmail(email) {
		return nil, models.NewValidationError("A valid email is required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, models.NewValidationError("Password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, internal(err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal(err)
	}

	user := &models.User{Name: name, Email: email, Password: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, internal(err)
	}

	return s.issue(user)
}

// Login checks credentials and signs a token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := normalizeEmail(in.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, internal(err)
	}
	if user == nil {
		middleware.Logger.InfoContext(ctx, "login failed", slog.String("reason", "unknown_email"))
		return nil, ErrUnknownEmail
	}

	if err := s.hasher.Compare(user.Password, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			middleware.Logger.InfoContext(ctx, "login failed",
				slog.String("reason", "wrong_password"),
				slog.Uint64("user_id", uint64(user.ID)),
			)
			return nil, ErrWrongPassword
		}
		return nil, internal(err)
	}

	return s.issue(user)
}

// Profile loads the identity behind a verified session.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}

func (s *UserService) issue(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, internal(err)
	}
	return &Session{User: user, Token: token}, nil
}
