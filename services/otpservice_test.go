package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gateprep/model"
)

func otpRecord(now time.Time) *model.OTPRecord {
	return &model.OTPRecord{
		Email:     "student@example.com",
		Code:      "482913",
		Reference: "Ab3dE6gH9k",
		CreatedAt: now,
		ExpiresAt: now.Add(OTPTTL),
	}
}

func TestGenerateOTP_DigitsOnly(t *testing.T) {
	code, err := GenerateOTP(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit in code %q", code)
		}
	}

	if _, err := GenerateOTP(0); err == nil {
		t.Fatalf("zero length must be rejected")
	}
}

func TestGenerateRef_Alphanumeric(t *testing.T) {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	ref := GenerateRef(10)
	if len(ref) != 10 {
		t.Fatalf("expected 10 characters, got %q", ref)
	}
	for _, r := range ref {
		if !strings.ContainsRune(characters, r) {
			t.Fatalf("unexpected character %q in ref %q", r, ref)
		}
	}
}

func TestValidateOTPRecord(t *testing.T) {
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(*model.OTPRecord)
		email  string
		code   string
		at     time.Time
		want   error
	}{
		{name: "valid", email: "student@example.com", code: "482913", at: now.Add(time.Minute)},
		{name: "case-insensitive email", email: "Student@Example.COM", code: "482913", at: now.Add(time.Minute)},
		{
			name:  "wrong email",
			email: "other@example.com", code: "482913", at: now.Add(time.Minute),
			want: ErrOTPNotFound,
		},
		{
			name:   "already verified",
			mutate: func(r *model.OTPRecord) { r.Verified = true },
			email:  "student@example.com", code: "482913", at: now.Add(time.Minute),
			want: ErrOTPUsed,
		},
		{
			name:  "expired",
			email: "student@example.com", code: "482913", at: now.Add(OTPTTL + time.Second),
			want: ErrOTPExpired,
		},
		{
			name:  "wrong code",
			email: "student@example.com", code: "000000", at: now.Add(time.Minute),
			want: ErrOTPMismatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := otpRecord(now)
			if tc.mutate != nil {
				tc.mutate(record)
			}
			err := ValidateOTPRecord(record, tc.email, tc.code, tc.at)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if !errors.Is(ValidateOTPRecord(nil, "student@example.com", "482913", now), ErrOTPNotFound) {
		t.Fatalf("nil record must report not found")
	}
}
