package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"
	"rentmart-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	tokens   security.TokenManager
	emailSvc EmailService
}

func NewAuthService(userRepo repository.UserRepository, noteRepo repository.NotificationRepository, tokens security.TokenManager, emailSvc EmailService) AuthService {
	return &authService{
		userRepo: userRepo,
		noteRepo: noteRepo,
		tokens:   tokens,
		emailSvc: emailSvc,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.Identity, error) {
	if field := firstMissingRegisterField(input); field != "" {
		return nil, &ValidationError{Field: field}
	}

	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, &ValidationError{Field: "role"}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PhoneNumber:  input.Phone,
		PasswordHash: string(hash),
		Name:         input.Name,
		Address:      input.Address,
		Role:         role,
	}
	if role == domain.RoleEndUser {
		user.CompanyName = input.CompanyName
		user.BusinessType = input.BusinessType
	}

	// The duplicate check and the insert are not one transaction; the unique
	// index on lower(email) settles concurrent identical registrations.
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, &PersistenceError{Err: err}
	}

	welcome := &domain.Notification{
		UserID:  user.ID,
		Type:    domain.NotificationTypeWelcome,
		Title:   "Welcome to RentMart",
		Message: "Your account is ready. Happy renting!",
	}
	if err := s.noteRepo.Create(ctx, welcome); err != nil {
		logger.Warn("Failed to create welcome notification", "userID", user.ID, "error", err)
	}
	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.Name); err != nil {
		logger.Warn("Failed to send welcome email", "email", user.Email, "error", err)
	}

	identity := user.Identity()
	return &identity, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and bad password are indistinguishable to the caller;
		// only the audit log records which one happened.
		if errors.Is(err, sql.ErrNoRows) {
			logger.AuthAttempt(email, false, "unknown email")
		} else {
			logger.AuthAttempt(email, false, "lookup failed")
		}
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.AuthAttempt(email, false, "password mismatch")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	logger.AuthAttempt(email, true, "")
	identity := user.Identity()
	return &identity, token, nil
}

func firstMissingRegisterField(input RegisterInput) string {
	checks := []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"password", input.Password},
		{"role", input.Role},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return c.name
		}
	}
	return ""
}
