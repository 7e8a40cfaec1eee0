package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/platform/auth"
	"github.com/gearshare/service-rental/internal/platform/kafka"
	"github.com/gearshare/service-rental/internal/platform/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest holds the data needed to create an account.
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest holds the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest holds the editable profile fields.
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// UserDTO is the response representation of a user. The password hash never
// leaves the service.
type UserDTO struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuthResult carries the outcome of a successful signup or login.
type AuthResult struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
}

// AuthService handles accounts and the session lifecycle: a session is
// established at login and cleared at logout, and every authenticated
// operation resolves its actor through it.
type AuthService struct {
	users    userDomain.UserRepository
	jwt      *auth.JWTManager
	sessions *session.Store
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users userDomain.UserRepository,
	jwt *auth.JWTManager,
	sessions *session.Store,
	producer *kafka.Producer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwt,
		sessions: sessions,
		producer: producer,
		logger:   logger,
	}
}

// Signup creates a new account and logs it in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if len(req.Password) < 8 {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.NewConflictError("email is already registered")
	} else {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(req.Email, req.Name, "", string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", u.ID().String()))
	return s.establishSession(ctx, u)
}

// Login verifies credentials and establishes a session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	return s.establishSession(ctx, u)
}

// Logout clears the session, ending it immediately for every token bound to it.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetProfile returns a user's public profile.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// UpdateProfile edits the actor's display name and avatar, then announces
// the change so denormalized host fields on items get refreshed.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateProfile(req.Name, req.AvatarURL); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.publishProfileUpdated(ctx, u)

	result := toUserDTO(u)
	return &result, nil
}

// --- Helpers ---

func (s *AuthService) establishSession(ctx context.Context, u *userDomain.User) (*AuthResult, error) {
	sessionID, err := s.sessions.Create(ctx, u.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	role := auth.RoleUser
	if u.IsAdmin() {
		role = auth.RoleAdmin
	}
	token, err := s.jwt.Generate(u.ID(), sessionID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: toUserDTO(u), AccessToken: token}, nil
}

func (s *AuthService) publishProfileUpdated(ctx context.Context, u *userDomain.User) {
	if s.producer == nil {
		return
	}
	evt := events.UserProfileUpdatedEvent{
		UserID:     u.ID(),
		Name:       u.Name(),
		AvatarURL:  u.AvatarURL(),
		OccurredAt: time.Now().UTC(),
	}
	cloudEvent, err := kafka.NewCloudEvent("service-rental", events.UserProfileUpdated, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicUserEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish profile update",
			zap.String("user_id", u.ID().String()),
			zap.Error(err),
		)
	}
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:            u.ID(),
		Email:         u.Email(),
		Name:          u.Name(),
		AvatarURL:     u.AvatarURL(),
		AverageRating: u.AverageRating(),
		ReviewCount:   u.ReviewCount(),
		CreatedAt:     u.CreatedAt(),
	}
}
