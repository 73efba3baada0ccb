package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	pkgauth "github.com/swiftbasket/swiftbasket-backend/pkg/auth"
	"github.com/swiftbasket/swiftbasket-backend/pkg/auth/session"
	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
)

const otpLength = 6

// Indian mobile numbers: ten digits starting 6-9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

type otpKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type otpKeyer interface {
	OTPKey(phone string) string
	RateLimitKey(scope string) string
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type userStore interface {
	UpsertByPhone(ctx context.Context, phone string, now time.Time) (*models.User, error)
}

// RequestResult reports the outcome of an OTP request. Code is only
// populated when code reveal is enabled for local development.
type RequestResult struct {
	ExpiresIn time.Duration `json:"expires_in_seconds"`
	Code      *string       `json:"code,omitempty"`
}

// TokenPair is a freshly minted access/refresh token set.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// VerifyResult couples the authenticated user with their tokens.
type VerifyResult struct {
	UserID uuid.UUID `json:"user_id"`
	Phone  string    `json:"phone"`
	TokenPair
}

// Service implements the simulated OTP login flow. No SMS provider is
// wired; codes land in the application log (and in the response when
// reveal is enabled).
type Service struct {
	kv       otpKV
	keys     otpKeyer
	users    userStore
	sessions sessionManager
	otpCfg   config.OTPConfig
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the OTP service.
func NewService(kv otpKV, keys otpKeyer, users userStore, sessions sessionManager, otpCfg config.OTPConfig, jwtCfg config.JWTConfig, logg *logger.Logger) *Service {
	return &Service{
		kv:       kv,
		keys:     keys,
		users:    users,
		sessions: sessions,
		otpCfg:   otpCfg,
		jwtCfg:   jwtCfg,
		logg:     logg,
		now:      time.Now,
	}
}

// RequestOTP issues a one-time code for the phone number, subject to
// per-phone and per-IP rate limits.
func (s *Service) RequestOTP(ctx context.Context, phone, clientIP string) (*RequestResult, error) {
	if !phonePattern.MatchString(phone) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone must be a 10-digit Indian mobile number")
	}

	if err := s.allow(ctx, "otp:phone:"+phone, s.otpCfg.RequestPhoneLimit); err != nil {
		return nil, err
	}
	if clientIP != "" {
		if err := s.allow(ctx, "otp:ip:"+clientIP, s.otpCfg.RequestIPLimit); err != nil {
			return nil, err
		}
	}

	code, err := generateCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating otp")
	}
	if err := s.kv.Set(ctx, s.keys.OTPKey(phone), code, s.otpCfg.CodeTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing otp")
	}

	// Simulated delivery: the code goes to the log instead of an SMS
	// gateway.
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "phone", phone), "otp issued")
	}

	result := &RequestResult{ExpiresIn: s.otpCfg.CodeTTL}
	if s.otpCfg.RevealCodes {
		result.Code = &code
	}
	return result, nil
}

// VerifyOTP checks the code, upserts the user, and issues tokens. A
// code is single-use: it is deleted as soon as it matches.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error) {
	if !phonePattern.MatchString(phone) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone must be a 10-digit Indian mobile number")
	}
	if len(code) != otpLength {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired code")
	}

	key := s.keys.OTPKey(phone)
	stored, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading otp")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired code")
	}
	if err := s.kv.Del(ctx, key); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consuming otp")
	}

	now := s.now().UTC()
	user, err := s.users.UpsertByPhone(ctx, phone, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upserting user")
	}

	pair, err := s.issueTokens(ctx, user.ID, user.Phone, now)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{UserID: user.ID, Phone: user.Phone, TokenPair: *pair}, nil
}

// Refresh rotates the refresh token and mints a new access token. The
// old access token may be expired; only its signature and jti matter.
func (s *Service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating session")
	}

	now := s.now().UTC()
	signed, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Phone:  claims.Phone,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{
		AccessToken:  signed,
		RefreshToken: newRefresh,
		ExpiresAt:    now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}

// Logout revokes the session tied to the access token's jti.
func (s *Service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID, phone string, now time.Time) (*TokenPair, error) {
	accessID := session.NewAccessID()
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating session")
	}

	signed, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: userID,
		Phone:  phone,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{
		AccessToken:  signed,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}

func (s *Service) allow(ctx context.Context, scope string, limit int) error {
	if limit <= 0 {
		return nil
	}
	count, err := s.kv.IncrWithTTL(ctx, s.keys.RateLimitKey(scope), s.otpCfg.RequestWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking rate limit")
	}
	if count > int64(limit) {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many otp requests, try again shortly")
	}
	return nil
}

func generateCode() (string, error) {
	upper := big.NewInt(1)
	for i := 0; i < otpLength; i++ {
		upper.Mul(upper, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpLength, n), nil
}
