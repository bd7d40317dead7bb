package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/Raghugowd/Internx-sub001/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OTP errors.
var (
	ErrOTPInvalidOrExpired = errors.New("otp invalid or expired")
	ErrOTPDispatchFailed   = errors.New("otp dispatch failed")
)

// OTPService manages per-email verification challenges. A challenge is a
// numeric code stored in Redis under otp:<email> with a TTL; requesting a
// new code for the same email overwrites the old one (challenges never
// stack), and a challenge is deleted only when registration succeeds.
type OTPService struct {
	cfg    *config.Config
	rdb    *redis.Client
	mailer Mailer
	log    zerolog.Logger
}

// NewOTPService creates a new OTPService.
func NewOTPService(cfg *config.Config, rdb *redis.Client, mailer Mailer, log zerolog.Logger) *OTPService {
	return &OTPService{cfg: cfg, rdb: rdb, mailer: mailer, log: log}
}

// RequestChallenge generates a fresh code for the email, stores it with the
// configured expiry, and dispatches it by mail. The Redis write happens
// first so a successfully delivered code is always verifiable.
func (s *OTPService) RequestChallenge(ctx context.Context, email string) error {
	code, err := GenerateCode(s.cfg.OTPDigits)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	key := config.CacheKey.OTPChallengeKey(email)
	if err := s.rdb.Set(ctx, key, code, s.cfg.OTPExpiry).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}

	if err := s.mailer.SendOTP(email, code, s.cfg.OTPExpiry); err != nil {
		// Remove the unverifiable challenge so the caller can re-request
		// immediately without hitting a stale code.
		if delErr := s.rdb.Del(ctx, key).Err(); delErr != nil {
			s.log.Warn().Err(delErr).Str("email", email).Msg("failed to drop undelivered challenge")
		}
		s.log.Error().Err(err).Str("email", email).Msg("OTP dispatch failed")
		return ErrOTPDispatchFailed
	}

	return nil
}

// Verify checks the submitted code against the outstanding challenge.
// A missing, expired, or mismatched code all yield ErrOTPInvalidOrExpired.
// The challenge is NOT consumed here; call Consume after the guarded
// operation has committed.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	stored, err := s.rdb.Get(ctx, config.CacheKey.OTPChallengeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPInvalidOrExpired
		}
		return fmt.Errorf("load challenge: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrOTPInvalidOrExpired
	}
	return nil
}

// Consume invalidates the challenge after successful use. Best effort: the
// TTL bounds the damage if the delete fails.
func (s *OTPService) Consume(ctx context.Context, email string) {
	if err := s.rdb.Del(ctx, config.CacheKey.OTPChallengeKey(email)).Err(); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to consume challenge")
	}
}

// GenerateCode returns a cryptographically random numeric code of n digits.
// Bytes >= 250 are discarded so every digit is equally likely.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid code length %d", n)
	}
	code := make([]byte, n)
	buf := make([]byte, 1)
	for i := 0; i < n; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		if buf[0] >= 250 {
			continue
		}
		code[i] = '0' + buf[0]%10
		i++
	}
	return string(code), nil
}
