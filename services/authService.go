package services

import (
	"MediBook/database"
	"MediBook/models"
	"MediBook/repositories"
	"MediBook/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// AuthService manages accounts and sessions. Roles are fixed at registration;
// a login attempt against the wrong role is rejected outright and no session
// cookies are issued.
type AuthService interface {
	Register(ctx context.Context, in utils.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password, selectedRole string) (user *models.User, accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, token string) (string, error)
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{userRepo: userRepo, profileRepo: profileRepo}
}

func (s *authService) Register(ctx context.Context, in utils.RegisterInput) (*models.User, error) {
	if err := utils.ValidateRegisterInput(in); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	// Guard against duplicate concurrent registrations for the same email.
	lockKey := fmt.Sprintf("register_lock:%s", in.Email)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire registration lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: registration already in progress", models.ErrValidation)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release registration lock: %v", err)
		}
	}()

	if exists, err := s.userRepo.EmailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: email already registered", models.ErrValidation)
	}

	roleID, err := s.userRepo.RoleIDByName(ctx, in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		FullName: in.FullName,
		Email:    in.Email,
		Password: hashedPassword,
		RoleID:   roleID,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// A profile row exists for every account from day one.
	if err := s.profileRepo.Upsert(ctx, &models.Profile{
		ID:       user.ID,
		FullName: in.FullName,
	}); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password, selectedRole string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, "", "", models.ErrUnauthenticated
	}

	// Accounts may only log in through their own role. Tokens are stateless,
	// so refusing to issue them is the whole rejection.
	if selectedRole != "" && user.Role.Name != selectedRole {
		return nil, "", "", fmt.Errorf("%w: account is registered as a %s", models.ErrForbidden, user.Role.Name)
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role.Name)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

func (s *authService) Refresh(ctx context.Context, token string) (string, error) {
	claims, err := utils.ValidateToken(token)
	if err != nil {
		return "", models.ErrUnauthenticated
	}
	return utils.GenerateAccessToken(claims.UserID, claims.Role)
}

func (s *authService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.ErrNotFound
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(email, code); err != nil {
		return fmt.Errorf("failed to send reset code email: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := utils.ValidatePasswordReset(code, newPassword); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	storedCode, err := utils.GetResetCode(ctx, email)
	if err != nil {
		return err
	}
	if storedCode == nil || *storedCode != code {
		return fmt.Errorf("%w: invalid reset code", models.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.ErrNotFound
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := utils.DeleteResetCode(ctx, email); err != nil {
		log.Printf("Failed to delete reset code: %v", err)
	}
	return nil
}
