package services

import (
	"MediBook/models"
	"MediBook/repositories"
	"MediBook/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ repositories.UserRepository = (*mockUserRepository)(nil)

type mockUserRepository struct {
	EmailExistsFn        func(ctx context.Context, email string) (bool, error)
	CreateUserFn         func(ctx context.Context, user *models.User) error
	GetUserByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	GetUserByIDFn        func(ctx context.Context, userID string) (*models.User, error)
	RoleIDByNameFn       func(ctx context.Context, name string) (int64, error)
	UpdateUserPasswordFn func(ctx context.Context, userID, hashedPassword string) error
	DeleteUserCacheFn    func(ctx context.Context, email string) error
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFn(ctx, email)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.CreateUserFn(ctx, user)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetUserByEmailFn(ctx, email)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.GetUserByIDFn(ctx, userID)
}

func (m *mockUserRepository) RoleIDByName(ctx context.Context, name string) (int64, error) {
	return m.RoleIDByNameFn(ctx, name)
}

func (m *mockUserRepository) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	return m.UpdateUserPasswordFn(ctx, userID, hashedPassword)
}

func (m *mockUserRepository) DeleteUserCache(ctx context.Context, email string) error {
	return m.DeleteUserCacheFn(ctx, email)
}

func userRepoWithAccount(t *testing.T, email, password, role string) *mockUserRepository {
	hashed, err := utils.HashPassword(password)
	assert.NoError(t, err)

	account := &models.User{
		ID:       "user-1",
		FullName: "Ada Obi",
		Email:    email,
		Password: hashed,
		Role:     models.Role{Name: role},
	}
	return &mockUserRepository{
		GetUserByEmailFn: func(ctx context.Context, got string) (*models.User, error) {
			if got == email {
				return account, nil
			}
			return nil, nil
		},
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := userRepoWithAccount(t, "ada@example.com", "Str0ng!pass", models.RolePatient)
	service := NewAuthService(repo, nil)

	_, _, _, err := service.Login(context.Background(), "nobody@example.com", "Str0ng!pass", models.RolePatient)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := userRepoWithAccount(t, "ada@example.com", "Str0ng!pass", models.RolePatient)
	service := NewAuthService(repo, nil)

	_, _, _, err := service.Login(context.Background(), "ada@example.com", "wrong", models.RolePatient)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestLoginRoleMismatchIssuesNoTokens(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	repo := userRepoWithAccount(t, "ada@example.com", "Str0ng!pass", models.RolePatient)
	service := NewAuthService(repo, nil)

	user, access, refresh, err := service.Login(context.Background(), "ada@example.com", "Str0ng!pass", models.RoleDoctor)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Nil(t, user)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestLoginSuccessIssuesTokenPair(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	repo := userRepoWithAccount(t, "ada@example.com", "Str0ng!pass", models.RolePatient)
	service := NewAuthService(repo, nil)

	user, access, refresh, err := service.Login(context.Background(), "ada@example.com", "Str0ng!pass", models.RolePatient)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := utils.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RolePatient, claims.Role)
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	service := NewAuthService(&mockUserRepository{}, nil)

	_, err := service.Refresh(context.Background(), "v2.local.garbage")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	service := NewAuthService(&mockUserRepository{}, nil)

	_, refresh, err := utils.GenerateTokens("user-1", models.RoleDoctor)
	assert.NoError(t, err)

	access, err := service.Refresh(context.Background(), refresh)
	assert.NoError(t, err)

	claims, err := utils.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}
