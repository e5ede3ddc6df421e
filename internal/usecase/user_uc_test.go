package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newUserUC() (*UserUsecase, *MockUserRepository, *MockSessionStore, *MockEventPublisher, *MockMailer) {
	users := new(MockUserRepository)
	sessions := new(MockSessionStore)
	natsPub := new(MockEventPublisher)
	mailer := new(MockMailer)
	uc := NewUserUsecase(users, sessions, natsPub, mailer, testSecret, time.Hour, logger.NewNop())
	return uc, users, sessions, natsPub, mailer
}

func TestUserUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, users, sessions, natsPub, mailer := newUserUC()

		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "user-1"
		}).Return(nil).Once()
		sessions.On("Save", ctx, mock.AnythingOfType("string"), "user-1", time.Hour).Return(nil).Once()
		natsPub.On("Publish", ctx, "user.registered", mock.Anything).Return(nil).Once()
		mailer.On("SendWelcomeEmail", "ana@example.com", "Ana").Return(nil).Once()

		user, session, err := uc.Signup(ctx, "  Ana ", "Horvat", " Ana@Example.COM ", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, "Ana", user.FirstName)
		assert.NotEqual(t, "secret123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

		// The issued token must parse with the shared secret and carry
		// the user id as subject.
		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(session.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.NotEmpty(t, claims.ID)

		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		uc, users, _, _, _ := newUserUC()

		_, _, err := uc.Signup(ctx, "Ana", "Horvat", "ana@example.com", "123")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		uc, users, _, _, _ := newUserUC()

		_, _, err := uc.Signup(ctx, "Ana", "Horvat", "not-an-email", "secret123")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		uc, users, sessions, _, _ := newUserUC()

		users.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken).Once()

		_, _, err := uc.Signup(ctx, "Ana", "Horvat", "ana@example.com", "secret123")

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WelcomeEmailFailureIsNotFatal", func(t *testing.T) {
		uc, users, sessions, natsPub, mailer := newUserUC()

		users.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "user-1"
		}).Return(nil).Once()
		sessions.On("Save", ctx, mock.Anything, "user-1", time.Hour).Return(nil).Once()
		natsPub.On("Publish", ctx, "user.registered", mock.Anything).Return(nil).Once()
		mailer.On("SendWelcomeEmail", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, session, err := uc.Signup(ctx, "Ana", "Horvat", "ana@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotNil(t, session)
	})
}

func TestUserUsecase_Login(t *testing.T) {
	ctx := context.Background()

	hashed := func(password string) string {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		return string(hash)
	}

	t.Run("Success", func(t *testing.T) {
		uc, users, sessions, _, _ := newUserUC()
		stored := &domain.User{ID: "user-1", Email: "ana@example.com", Password: hashed("secret123")}

		users.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil).Once()
		sessions.On("Save", ctx, mock.Anything, "user-1", time.Hour).Return(nil).Once()

		user, session, err := uc.Login(ctx, "ana@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.NotEmpty(t, session.Token)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		uc, users, sessions, _, _ := newUserUC()

		users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound).Once()

		_, _, err := uc.Login(ctx, "ghost@example.com", "secret123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		uc, users, sessions, _, _ := newUserUC()
		stored := &domain.User{ID: "user-1", Email: "ana@example.com", Password: hashed("secret123")}

		users.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

		_, _, err := uc.Login(ctx, "ana@example.com", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserUsecase_Logout(t *testing.T) {
	ctx := context.Background()
	uc, _, sessions, _, _ := newUserUC()

	sessions.On("Revoke", ctx, "token-1").Return(nil).Once()

	err := uc.Logout(ctx, "token-1")

	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}
