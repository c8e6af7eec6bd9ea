package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/smtp"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gateprep/model"
)

const (
	otpCollection = "signupOtps"

	// OTPTTL is how long an emailed code stays redeemable.
	OTPTTL = 15 * time.Minute

	// OTPMaxActive caps unexpired codes per email before further requests
	// are refused.
	OTPMaxActive = 3
)

var (
	ErrOTPNotFound   = errors.New("verification code not found")
	ErrOTPExpired    = errors.New("verification code expired")
	ErrOTPMismatch   = errors.New("verification code does not match")
	ErrOTPUsed       = errors.New("verification code already used")
	ErrOTPUnverified = errors.New("email has not been verified")
)

// LoadEmailConfig reads the SMTP settings from the environment. The .env
// file is loaded once at bootstrap, so only os.Getenv is consulted here.
func LoadEmailConfig() (*model.EmailConfig, error) {
	config := &model.EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
	if config.Host == "" || config.Port == "" || config.Username == "" || config.Password == "" {
		return nil, fmt.Errorf("missing required SMTP environment variables")
	}
	return config, nil
}

// GenerateOTP returns a numeric code of the given length.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(byte('0' + rand.Intn(10)))
	}
	return otp.String(), nil
}

// GenerateRef returns an alphanumeric reference used as the record's
// document id and echoed back to the client.
func GenerateRef(length int) string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	var ref strings.Builder
	for i := 0; i < length; i++ {
		ref.WriteByte(characters[rand.Intn(len(characters))])
	}
	return ref.String()
}

// SaveOTPRecord stores a fresh code under its reference.
func SaveOTPRecord(ctx context.Context, fb *firestore.Client, email, code, ref string, now time.Time) error {
	record := model.OTPRecord{
		Email:     email,
		Code:      code,
		Reference: ref,
		Verified:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(OTPTTL),
	}
	_, err := fb.Collection(otpCollection).Doc(ref).Set(ctx, record)
	if err != nil {
		return model.WrapRepository("save otp record", err)
	}
	return nil
}

// ActiveOTPCount counts unexpired codes issued to an email.
func ActiveOTPCount(ctx context.Context, fb *firestore.Client, email string, now time.Time) (int, error) {
	iter := fb.Collection(otpCollection).Where("email", "==", email).Documents(ctx)
	defer iter.Stop()

	var count int
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, model.WrapRepository("count otp records", err)
		}

		var record model.OTPRecord
		if err := doc.DataTo(&record); err != nil {
			continue
		}
		if now.Before(record.ExpiresAt) {
			count++
		}
	}
	return count, nil
}

// ValidateOTPRecord checks a stored record against the code a client
// presented. It is pure so redemption rules stay testable without a store.
func ValidateOTPRecord(record *model.OTPRecord, email, code string, now time.Time) error {
	switch {
	case record == nil:
		return ErrOTPNotFound
	case !strings.EqualFold(record.Email, email):
		return ErrOTPNotFound
	case record.Verified:
		return ErrOTPUsed
	case now.After(record.ExpiresAt):
		return ErrOTPExpired
	case record.Code != code:
		return ErrOTPMismatch
	}
	return nil
}

// VerifyOTP checks the presented code and marks the record verified so the
// signup that follows can redeem it.
func VerifyOTP(ctx context.Context, fb *firestore.Client, email, ref, code string, now time.Time) error {
	docRef := fb.Collection(otpCollection).Doc(ref)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrOTPNotFound
		}
		return model.WrapRepository("load otp record", err)
	}

	var record model.OTPRecord
	if err := doc.DataTo(&record); err != nil {
		return model.WrapRepository("parse otp record", err)
	}
	if err := ValidateOTPRecord(&record, email, code, now); err != nil {
		return err
	}

	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "verified", Value: true},
	})
	if err != nil {
		return model.WrapRepository("mark otp verified", err)
	}
	return nil
}

// ConsumeVerifiedOTP redeems a verified record for the email and deletes it,
// making verification single-use. Signup calls this before creating the
// account.
func ConsumeVerifiedOTP(ctx context.Context, fb *firestore.Client, email, ref string, now time.Time) error {
	docRef := fb.Collection(otpCollection).Doc(ref)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrOTPUnverified
		}
		return model.WrapRepository("load otp record", err)
	}

	var record model.OTPRecord
	if err := doc.DataTo(&record); err != nil {
		return model.WrapRepository("parse otp record", err)
	}
	if !strings.EqualFold(record.Email, email) || !record.Verified {
		return ErrOTPUnverified
	}
	if now.After(record.ExpiresAt) {
		return ErrOTPExpired
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return model.WrapRepository("consume otp record", err)
	}
	return nil
}

// SendOTPEmail delivers the code over SMTP as an HTML message.
func SendOTPEmail(to, code, ref string) error {
	config, err := LoadEmailConfig()
	if err != nil {
		return fmt.Errorf("config loading error: %w", err)
	}

	addr := config.Host + ":" + config.Port
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)

	from := config.Username
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := "From: " + from + "\n" +
		"To: " + to + "\n" +
		"Subject: Your verification code\n" +
		mime + "\n" +
		otpEmailBody(code, ref)

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	return nil
}

func otpEmailBody(code, ref string) string {
	return `
        <table width="480" cellpadding="0" cellspacing="0" border="0" style="font-family:Arial,sans-serif">
          <tbody>
            <tr><td align="center" bgcolor="#0A0F1C" style="padding:24px"><h1 style="color:#ffffff;margin:0">GatePrep</h1></td></tr>
            <tr><td align="center" style="padding:24px;color:#333333;font-size:16px">
              Use the code below to verify your email address.
            </td></tr>
            <tr><td align="center" style="padding:12px;font-size:28px;letter-spacing:8px;color:#0A0F1C">
              <strong>` + code + `</strong>
            </td></tr>
            <tr><td align="center" style="padding:12px;color:#888888;font-size:13px">
              Ref: ` + ref + ` &middot; The code expires in 15 minutes.
            </td></tr>
          </tbody>
        </table>
        `
}
