package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Defaults applied when AuthConfig fields are zero.
const (
	defaultTokenTTL        = time.Hour
	defaultRememberTTL     = 30 * 24 * time.Hour
	defaultMaxFailures     = 5
	defaultLockoutWindow   = 15 * time.Minute
	defaultRateLimitMax    = 10
	defaultRateLimitWindow = time.Minute
)

// Domain errors for auth flows. Handlers map these onto HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account locked after repeated failures")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password too weak")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo    repository.Authorization
	attemptRepo repository.LoginAttemptRepo
	eventRepo   repository.EventRepo
	cfg         AuthConfig
}

func NewAuthService(authRepo repository.Authorization, attemptRepo repository.LoginAttemptRepo, eventRepo repository.EventRepo, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = defaultRememberTTL
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.LockoutWindow <= 0 {
		cfg.LockoutWindow = defaultLockoutWindow
	}
	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = defaultRateLimitMax
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = defaultRateLimitWindow
	}
	return &AuthService{authRepo: authRepo, attemptRepo: attemptRepo, eventRepo: eventRepo, cfg: cfg}
}

// SignUp validates the email and password, hashes the password and creates
// a new user. Weak passwords (score below the Fair band) are rejected.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (SignUpResult, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if !ValidateEmail(email) {
		return SignUpResult{}, ErrInvalidEmail
	}

	score := ScorePassword(p.Password)
	if score < fairThreshold {
		return SignUpResult{}, fmt.Errorf("%w: strength %d/100", ErrWeakPassword, score)
	}

	role := p.Role
	if role == "" {
		role = models.RoleViewer
	}
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleViewer:
	default:
		return SignUpResult{}, fmt.Errorf("%w: %q", ErrInvalidRole, p.Role)
	}

	if existing, err := s.authRepo.GetByEmail(email); err != nil {
		return SignUpResult{}, err
	} else if existing != nil {
		return SignUpResult{}, ErrEmailTaken
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.authRepo.Create(email, hash, role)
	if err != nil {
		return SignUpResult{}, err
	}

	_ = s.eventRepo.Append(ctx, models.AuditEvent{
		Type:        models.EventSignUp,
		Description: "Account created for " + email,
		Metadata:    map[string]any{"user_id": id, "role": role},
	})

	return SignUpResult{ID: id, StrengthScore: score, StrengthLabel: StrengthLabel(score)}, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// GenerateToken validates credentials and returns a JWT. Before hitting the
// password check it consults the recent attempt history: a flooded window
// rate-limits the email, a run of consecutive failures locks the account.
func (s *AuthService) GenerateToken(ctx context.Context, email, password string, rememberMe bool) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UTC()

	attempts, err := s.attemptRepo.Recent(ctx, email, now.Add(-s.cfg.LockoutWindow))
	if err != nil {
		return "", err
	}

	if s.withinRateWindow(attempts, now) >= s.cfg.RateLimitMax {
		s.recordFailure(ctx, email, now)
		return "", ErrTooManyAttempts
	}
	if consecutiveFailures(attempts) >= s.cfg.MaxFailures {
		return "", ErrAccountLocked
	}

	u, err := s.authRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil {
		s.recordFailure(ctx, email, now)
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email, now)
		// The failure just recorded may have completed the lockout run.
		if consecutiveFailures(attempts)+1 >= s.cfg.MaxFailures {
			_ = s.eventRepo.Append(ctx, models.AuditEvent{
				Type:        models.EventAccountLocked,
				Description: "Account locked for " + email,
				Metadata:    map[string]any{"failures": consecutiveFailures(attempts) + 1},
			})
		}
		return "", ErrInvalidCredentials
	}

	_ = s.attemptRepo.Record(ctx, models.LoginAttempt{Email: email, Success: true, AttemptedAt: now})

	ttl := s.cfg.TokenTTL
	if rememberMe {
		ttl = s.cfg.RememberTTL
	}
	return s.issueToken(u.ID, u.Role, ttl)
}

// ParseToken parses a JWT and returns the caller identity.
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// recordFailure stores a failed attempt and a LOGIN_FAILURE audit event.
func (s *AuthService) recordFailure(ctx context.Context, email string, now time.Time) {
	_ = s.attemptRepo.Record(ctx, models.LoginAttempt{Email: email, Success: false, AttemptedAt: now})
	_ = s.eventRepo.Append(ctx, models.AuditEvent{
		Type:        models.EventLoginFailure,
		Description: "Failed sign-in for " + email,
	})
}

// withinRateWindow counts attempts (of any outcome) inside the rate window.
func (s *AuthService) withinRateWindow(attempts []models.LoginAttempt, now time.Time) int {
	cutoff := now.Add(-s.cfg.RateLimitWindow)
	n := 0
	for _, a := range attempts {
		if !a.AttemptedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

// consecutiveFailures counts the failure run at the head of the history
// (attempts are ordered newest first; a success ends the run).
func consecutiveFailures(attempts []models.LoginAttempt) int {
	n := 0
	for _, a := range attempts {
		if a.Success {
			break
		}
		n++
	}
	return n
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
