package dto

type CreateTaskRequest struct {
	ID               string   `json:"id"`
	Title            string   `json:"title" binding:"required"`
	Link             *string  `json:"link"`
	Subject          *string  `json:"subject"`
	Description      *string  `json:"description"`
	Date             string   `json:"date"`
	EstimatedMinutes *float64 `json:"estimatedMinutes"`
}

type UpdateTaskRequest struct {
	Title            string   `json:"title" binding:"required"`
	Link             *string  `json:"link"`
	Subject          *string  `json:"subject"`
	Description      *string  `json:"description"`
	Date             string   `json:"date"`
	EstimatedMinutes *float64 `json:"estimatedMinutes"`
}

type ToggleTaskRequest struct {
	// Pointer so an explicit false still binds.
	Done *bool `json:"done" binding:"required"`
}

type ConfirmDeleteRequest struct {
	Token string `json:"token" binding:"required"`
}
