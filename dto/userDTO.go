package dto

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Exam     string `json:"exam"`
	ExamDate string `json:"examDate"`
	Theme    string `json:"theme"`
	Password string `json:"password"`
}

type CreateNoteRequest struct {
	Text      string   `json:"text" binding:"required"`
	VideoTime *float64 `json:"videoTime"`
}
