package auth

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gateprep/connection"
	"gateprep/dto"
	"gateprep/model"
	"gateprep/services"
)

func SignUpController(router *gin.Engine, app *connection.App) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, app)
	})
}

func Signup(c *gin.Context, app *connection.App) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := isValidEmail(request.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(request.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	exam := request.Exam
	if exam == "" {
		exam = model.ExamGATE
	}
	if _, ok := model.ExamSubjects[exam]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown exam type"})
		return
	}
	if request.ExamDate != "" {
		if _, err := time.Parse(model.DateLayout, request.ExamDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exam date must be formatted YYYY-MM-DD"})
			return
		}
	}

	ctx := c.Request.Context()
	exists, err := services.UserExist(ctx, app.Firestore, request.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing email"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
		return
	}

	// Registration only proceeds once the address has redeemed an emailed
	// code; redemption is single-use.
	if err := services.ConsumeVerifiedOTP(ctx, app.Firestore, request.Email, request.OTPRef, time.Now()); err != nil {
		if errors.Is(err, services.ErrOTPUnverified) || errors.Is(err, services.ErrOTPExpired) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email has not been verified"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email verification"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	docid := uuid.New().String()
	newUser := model.User{
		Name:      strings.TrimSpace(request.Name),
		Email:     request.Email,
		Password:  string(hashedPassword),
		Exam:      exam,
		ExamDate:  request.ExamDate,
		Theme:     "system",
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if _, err := app.Firestore.Collection("users").Doc(docid).Set(ctx, newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"docID":   docid,
	})
}

func isValidEmail(email string) error {
	const emailRegex = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	if !regexp.MustCompile(emailRegex).MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}
