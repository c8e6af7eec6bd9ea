package model

import "time"

// EmailConfig carries the SMTP settings used to deliver verification codes.
type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// OTPRecord is one emailed verification code, stored under the reference
// handed back to the client. The code itself never leaves the server in a
// response body.
type OTPRecord struct {
	Email     string    `firestore:"email"`
	Code      string    `firestore:"code"`
	Reference string    `firestore:"reference"`
	Verified  bool      `firestore:"verified"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}
