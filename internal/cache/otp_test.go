package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPKey(t *testing.T) {
	assert.Equal(t, "otp_ana@example.com_reset_password", otpKey(OTPResetPassword, "  Ana@Example.com "))
	assert.NotEqual(t, otpKey(OTPResetPassword, "ana@example.com"), otpKey("otro", "ana@example.com"))
}
