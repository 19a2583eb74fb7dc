package service

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"html/template"
	"math/big"
	"time"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// generateOTP returns a code drawn uniformly from [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

const otpSubject = "Kode OTP DokuGo"

var otpEmail = template.Must(template.New("otp").Parse(`<p>Halo {{.Name}},</p>
<p>Berikut adalah kode OTP untuk mereset password akun DokuGo kamu:</p>
<p style="font-size: 24px; font-weight: bold;">{{.Code}}</p>
<p>Kode OTP ini akan kedaluwarsa dalam {{.Minutes}} menit.</p>
<p>Jika kamu tidak meminta reset password, abaikan email ini.</p>`))

func renderOTPEmail(name, code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := otpEmail.Execute(&buf, struct {
		Name    string
		Code    string
		Minutes int
	}{
		Name:    name,
		Code:    code,
		Minutes: int(ttl.Minutes()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render otp email: %w", err)
	}
	return buf.String(), nil
}
