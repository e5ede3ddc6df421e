package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	natsadapter "github.com/SubhamSahu809/ProRental/internal/adapter/messaging/nats"
	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserUsecase handles signup, login, logout and profile lookups.
// Issued tokens are HS256 JWTs whose token id is registered in the
// session store; logout revokes the id so a token dies before its
// signature expires.
type UserUsecase struct {
	users     domain.UserRepository
	sessions  domain.SessionStore
	natsPub   domain.EventPublisher
	mailer    domain.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logger.Logger
}

func NewUserUsecase(
	users domain.UserRepository,
	sessions domain.SessionStore,
	natsPub domain.EventPublisher,
	mailer domain.Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	log *logger.Logger,
) *UserUsecase {
	return &UserUsecase{
		users:     users,
		sessions:  sessions,
		natsPub:   natsPub,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log.Named("UserUsecase"),
	}
}

// Session is an issued token with its lifetime, handed to the HTTP
// layer for cookie construction.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Signup registers a user and logs them in.
func (uc *UserUsecase) Signup(ctx context.Context, firstName, lastName, email, password string) (*domain.User, *Session, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	if firstName == "" || lastName == "" {
		return nil, nil, fmt.Errorf("%w: first and last name are required", domain.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := uc.issueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	uc.publish(ctx, natsadapter.SubjectUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	if uc.mailer != nil {
		if err := uc.mailer.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			uc.logger.Warn("Failed to send welcome email", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	uc.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, session, nil
}

// Login verifies credentials and issues a session token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, *Session, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := uc.issueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("User logged in", zap.String("user_id", user.ID))
	return user, session, nil
}

// Logout revokes the session token id. Revoking twice is harmless.
func (uc *UserUsecase) Logout(ctx context.Context, tokenID string) error {
	return uc.sessions.Revoke(ctx, tokenID)
}

// GetUser returns a user by id.
func (uc *UserUsecase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.FindByID(ctx, userID)
}

func (uc *UserUsecase) issueToken(ctx context.Context, userID string) (*Session, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(uc.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        tokenID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := uc.sessions.Save(ctx, tokenID, userID, uc.tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	return &Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func (uc *UserUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if err := uc.natsPub.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
