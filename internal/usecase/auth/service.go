package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"path"

	domainUser "contact-keeper/internal/domain/user"
	"contact-keeper/internal/logger"
	"contact-keeper/internal/mailer"
	"contact-keeper/internal/storage"
	appErrors "contact-keeper/pkg/errors"
	"contact-keeper/pkg/token"
	"contact-keeper/pkg/utils"

	"go.uber.org/zap"
)

// Service orchestrates the user lifecycle: signup, OTP activation, login,
// token refresh and avatar upload.
type Service struct {
	userRepo domainUser.Repository
	tokens   *token.Manager
	mail     mailer.Mailer
	avatars  storage.ObjectStorage
}

// NewService creates a new auth service. avatars may be nil when object
// storage is not configured; the avatar route is not mounted in that case.
func NewService(
	userRepo domainUser.Repository,
	tokens *token.Manager,
	mail mailer.Mailer,
	avatars storage.ObjectStorage,
) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		avatars:  avatars,
	}
}

// Signup registers a new inactive user, persists a fresh OTP and sends it
// by email. Email delivery is best-effort: a send failure is logged and the
// signup still succeeds.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Signup attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "signup_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hash, salt, err := utils.HashPassword(req.Passwd)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Email:      req.Email,
		PasswdHash: hash,
		Salt:       salt,
		IsActive:   false,
		OTP:        nil,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := s.userRepo.UpdateOTP(ctx, user.ID, &otp); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}
	user.OTP = &otp

	s.sendMail(user.Email, "Your OTP for registration",
		fmt.Sprintf("Your OTP is as follows: %s", otp))

	logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(user), nil
}

// Activate flips an inactive account to active when the submitted OTP
// matches the persisted one.
func (s *Service) Activate(ctx context.Context, email, otp string) (*UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if user.OTP == nil || *user.OTP != otp {
		logger.Warn("Activation attempt with wrong OTP",
			zap.String("email", email),
			zap.String("event", "activation_failed_otp_mismatch"),
		)
		return nil, appErrors.ErrInvalidOTP
	}

	if err := s.userRepo.SetActive(ctx, user.ID, true); err != nil {
		return nil, err
	}
	user.IsActive = true

	logger.Info("User activated",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_activated"),
	)

	return ToUserResponse(user), nil
}

// Login verifies credentials and issues a fresh access+refresh token pair.
// A successful login also replaces the persisted OTP with a new random
// value, invalidating any previously emailed code.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Username),
				zap.String("event", "login_failed_unknown_user"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswdHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_inactive_user"),
		)
		return nil, appErrors.ErrUserInactive
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := s.userRepo.UpdateOTP(ctx, user.ID, &otp); err != nil {
		return nil, fmt.Errorf("failed to reset otp: %w", err)
	}

	tokens, err := s.issueTokenPair(user.Email)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "login_success"),
	)

	return tokens, nil
}

// Refresh accepts a refresh-scoped token and reissues a token pair for its
// subject. The presented refresh token stays valid until its own expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.tokens.Decode(refreshToken, token.ScopeRefresh)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, appErrors.ErrInvalidToken
	}

	return s.issueTokenPair(user.Email)
}

// SendTestMail sends a test message to the user's own address.
func (s *Service) SendTestMail(u *domainUser.User) {
	s.sendMail(u.Email, "Test mail", "This is a test mail")
}

// SetAvatar stores the uploaded image and records its public URL on the
// user.
func (s *Service) SetAvatar(ctx context.Context, u *domainUser.User, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if s.avatars == nil {
		return "", errors.New("object storage is not configured")
	}

	key := "avatars/" + u.ID.String() + path.Ext(filename)
	if err := s.avatars.Put(ctx, key, r, size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.avatars.URL(key)
	if err := s.userRepo.SetAvatarURL(ctx, u.ID, url); err != nil {
		return "", err
	}

	logger.Info("Avatar updated",
		zap.String("user_id", u.ID.String()),
		zap.String("event", "avatar_updated"),
	)

	return url, nil
}

func (s *Service) issueTokenPair(email string) (*TokenResponse, error) {
	access, err := s.tokens.IssueAccess(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func (s *Service) sendMail(to, subject, body string) {
	if s.mail == nil {
		return
	}
	if err := s.mail.Send(to, subject, body); err != nil {
		logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

// generateOTP returns a random 6-digit activation code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
