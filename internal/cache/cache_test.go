package cache

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/config"
	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implementa solo los comandos que usa Cache; el resto provoca panic.
type fakeRedis struct {
	redis.Cmdable

	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data: make(map[string]string),
		ttl:  make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := f.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.ttl[key] = expiration

	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}

	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)

	cmd := redis.NewIntCmd(ctx, "incr", key)
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	_, ok := f.data[key]
	if ok {
		f.ttl[key] = expiration
	}

	cmd := redis.NewBoolCmd(ctx, "expire", key)
	cmd.SetVal(ok)
	return cmd
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Redis.OperationExpiration = 5
	cfg.Cache.SpecialtiesTTL = 300
	cfg.OTP.Expiration = 900
	cfg.OTP.MaxAttempts = 3
	return cfg
}

func TestCache_Specialties(t *testing.T) {
	rdb := newFakeRedis()
	c := New(testConfig(), rdb)
	ctx := context.Background()

	_, ok, err := c.GetSpecialties(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	specialties := []*domain.Specialty{
		{ID: uuid.New(), Name: "Cardiología", Code: "CAR"},
		{ID: uuid.New(), Name: "Dermatología", Code: "DER"},
	}
	require.NoError(t, c.SetSpecialties(ctx, specialties))
	assert.Equal(t, 300*time.Second, rdb.ttl[specialtiesKey])

	cached, ok, err := c.GetSpecialties(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cached, 2)
	assert.Equal(t, specialties[0].ID, cached[0].ID)
	assert.Equal(t, "DER", cached[1].Code)

	require.NoError(t, c.InvalidateSpecialties(ctx))
	_, ok, err = c.GetSpecialties(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_SpecialtiesDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.SpecialtiesTTL = 0
	rdb := newFakeRedis()
	c := New(cfg, rdb)

	require.NoError(t, c.SetSpecialties(context.Background(), []*domain.Specialty{{Code: "CAR"}}))
	assert.Empty(t, rdb.data)
}

func TestCache_OTP(t *testing.T) {
	rdb := newFakeRedis()
	c := New(testConfig(), rdb)
	ctx := context.Background()

	ok, err := c.VerifyOTP(ctx, OTPResetPassword, "ana@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SaveOTP(ctx, OTPResetPassword, "ana@example.com", "123456"))
	assert.Equal(t, 900*time.Second, rdb.ttl[otpKey(OTPResetPassword, "ana@example.com")])

	ok, err = c.VerifyOTP(ctx, OTPResetPassword, "ANA@example.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.VerifyOTP(ctx, OTPResetPassword, "ANA@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.DeleteOTP(ctx, OTPResetPassword, "ana@example.com"))
	ok, err = c.VerifyOTP(ctx, OTPResetPassword, "ana@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_OTPAttemptsLimit(t *testing.T) {
	rdb := newFakeRedis()
	c := New(testConfig(), rdb)
	ctx := context.Background()
	email := "ana@example.com"

	require.NoError(t, c.SaveOTP(ctx, OTPResetPassword, email, "123456"))

	for i := 0; i < 2; i++ {
		ok, err := c.VerifyOTP(ctx, OTPResetPassword, email, "000000")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, "2", rdb.data[otpAttemptsKey(OTPResetPassword, email)])
	assert.Equal(t, 900*time.Second, rdb.ttl[otpAttemptsKey(OTPResetPassword, email)])

	// el tercer fallo agota los intentos y borra el código
	ok, err := c.VerifyOTP(ctx, OTPResetPassword, email, "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, rdb.data, otpKey(OTPResetPassword, email))
	assert.NotContains(t, rdb.data, otpAttemptsKey(OTPResetPassword, email))

	ok, err = c.VerifyOTP(ctx, OTPResetPassword, email, "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	// un código nuevo empieza sin intentos
	require.NoError(t, c.SaveOTP(ctx, OTPResetPassword, email, "654321"))
	ok, err = c.VerifyOTP(ctx, OTPResetPassword, email, "654321")
	require.NoError(t, err)
	assert.True(t, ok)
}
