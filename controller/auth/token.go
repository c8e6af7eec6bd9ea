package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gateprep/connection"
	"gateprep/middleware"
	"gateprep/model"
	"gateprep/services"
)

func RefreshTokenController(router *gin.Engine, app *connection.App) {
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		RefreshToken(c, app)
	})
}

// RefreshToken rotates the token pair. The presented refresh token must
// match the hash stored on the profile, so only the most recently issued
// token is redeemable.
func RefreshToken(c *gin.Context, app *connection.App) {
	userId := c.MustGet("userId").(string)
	presented := c.MustGet("refreshToken").(string)

	ctx := c.Request.Context()
	user, err := services.GetUser(ctx, app.Firestore, userId)
	if errors.Is(err, model.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		app.Logger.Error("loading user failed", zap.String("userId", userId), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	if user.RefreshHash == "" || !services.VerifyRefreshTokenHash(user.RefreshHash, presented) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token has been revoked"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := services.CreateRefreshToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	refreshHash, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}
	if err := services.SaveRefreshHash(ctx, app.Firestore, user.UserID, refreshHash); err != nil {
		app.Logger.Error("storing refresh hash failed", zap.String("userId", user.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}
