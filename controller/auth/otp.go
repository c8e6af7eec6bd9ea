package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/services"
)

func OTPController(router *gin.Engine, app *connection.App) {
	routes := router.Group("/auth/otp")
	{
		routes.POST("/request", func(c *gin.Context) {
			RequestOTP(c, app)
		})
		routes.POST("/verify", func(c *gin.Context) {
			VerifyOTP(c, app)
		})
	}
}

// RequestOTP emails a 6-digit code to an address that wants to register.
// The code is generated and kept server-side; only the reference goes back
// to the client.
func RequestOTP(c *gin.Context, app *connection.App) {
	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := isValidEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	exists, err := services.UserExist(ctx, app.Firestore, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing email"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}

	now := time.Now()
	active, err := services.ActiveOTPCount(ctx, app.Firestore, req.Email, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check OTP request count"})
		return
	}
	if active >= services.OTPMaxActive {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many OTP requests. Please try again later."})
		return
	}

	code, err := services.GenerateOTP(6)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}
	ref := services.GenerateRef(10)

	if err := services.SendOTPEmail(req.Email, code, ref); err != nil {
		app.Logger.Error("otp mail failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	if err := services.SaveOTPRecord(ctx, app.Firestore, req.Email, code, ref, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save OTP record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP has been sent to your email",
		"ref":     ref,
	})
}

// VerifyOTP checks the code a client typed against the stored record and
// marks it redeemable by signup.
func VerifyOTP(c *gin.Context, app *connection.App) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := services.VerifyOTP(c.Request.Context(), app.Firestore, req.Email, req.Ref, req.OTP, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
	case errors.Is(err, services.ErrOTPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid reference code"})
	case errors.Is(err, services.ErrOTPUsed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has already been used"})
	case errors.Is(err, services.ErrOTPExpired):
		c.JSON(http.StatusGone, gin.H{"error": "OTP has expired"})
	case errors.Is(err, services.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
	default:
		app.Logger.Error("otp verification failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
	}
}
