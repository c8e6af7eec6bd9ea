package dto

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Exam     string `json:"exam"`
	ExamDate string `json:"examDate"`
	OTPRef   string `json:"otpRef" binding:"required"`
}

type RequestOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	Ref   string `json:"ref" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type CaptchaRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type AssessmentResult struct {
	Score   float32
	Action  string
	Reasons []string
}
