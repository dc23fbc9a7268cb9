package cache

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const OTPResetPassword = "reset_password"

func otpKey(purpose, email string) string {
	return fmt.Sprintf("otp_%s_%s", strings.ToLower(strings.TrimSpace(email)), purpose)
}

func otpAttemptsKey(purpose, email string) string {
	return otpKey(purpose, email) + "_attempts"
}

func (c *Cache) otpExpiration() time.Duration {
	return time.Duration(c.cfg.OTP.Expiration) * time.Second
}

// SaveOTP guarda un código nuevo y pone a cero sus intentos fallidos.
func (c *Cache) SaveOTP(ctx context.Context, purpose, email, otp string) error {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	if err := c.rdb.Del(ctx, otpAttemptsKey(purpose, email)).Err(); err != nil {
		return err
	}
	return c.rdb.Set(ctx, otpKey(purpose, email), otp, c.otpExpiration()).Err()
}

// VerifyOTP compara otp con el guardado. Un código caducado o inexistente no es un error.
// Tras OTP.MaxAttempts fallos el código se borra y hay que pedir otro.
func (c *Cache) VerifyOTP(ctx context.Context, purpose, email, otp string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	stored, err := c.rdb.Get(ctx, otpKey(purpose, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(otp)) == 1 {
		return true, nil
	}

	attemptsKey := otpAttemptsKey(purpose, email)
	attempts, err := c.rdb.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, err
	}
	if attempts == 1 {
		if err := c.rdb.Expire(ctx, attemptsKey, c.otpExpiration()).Err(); err != nil {
			return false, err
		}
	}
	if c.cfg.OTP.MaxAttempts > 0 && attempts >= int64(c.cfg.OTP.MaxAttempts) {
		if err := c.rdb.Del(ctx, otpKey(purpose, email), attemptsKey).Err(); err != nil {
			return false, err
		}
	}

	return false, nil
}

func (c *Cache) DeleteOTP(ctx context.Context, purpose, email string) error {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	return c.rdb.Del(ctx, otpKey(purpose, email), otpAttemptsKey(purpose, email)).Err()
}
