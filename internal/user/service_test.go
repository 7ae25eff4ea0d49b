package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, password, username, role string) (User, error) {
	args := m.Called(ctx, email, password, username, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, "steve@minecart.store", mock.Anything, "steve", string(RoleBuyer)).
			Return(User{ID: 1, Email: "steve@minecart.store", Username: "steve", Role: RoleBuyer}, nil)

		svc := NewService(repo)
		token, u, err := svc.Register(context.Background(), "steve@minecart.store", "hunter22", "steve")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		svc := NewService(repo)
		_, _, err := svc.Register(context.Background(), "steve@minecart.store", "hunter22", "steve")

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := HashPassword("hunter22")
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "steve@minecart.store").
			Return(User{ID: 1, Email: "steve@minecart.store", Password: hashed, Role: RoleBuyer}, nil)

		svc := NewService(repo)
		token, u, err := svc.Login(context.Background(), "steve@minecart.store", "hunter22")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseJWT(token)
		assert.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "steve@minecart.store").
			Return(User{ID: 1, Password: hashed}, nil)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "steve@minecart.store", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@minecart.store").
			Return(User{}, errors.New("sql: no rows in result set"))

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "nobody@minecart.store", "hunter22")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
