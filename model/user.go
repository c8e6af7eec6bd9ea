package model

// User is the profile document stored at users/{uid}. The uid is the
// document key and never part of the body.
type User struct {
	UserID      string `firestore:"-" json:"id"`
	Name        string `firestore:"name,omitempty" json:"name"`
	Email       string `firestore:"email,omitempty" json:"email"`
	Password    string `firestore:"password,omitempty" json:"-"`
	PhotoURL    string `firestore:"photoURL,omitempty" json:"photoURL"`
	Exam        string `firestore:"exam,omitempty" json:"exam"`
	ExamDate    string `firestore:"examDate,omitempty" json:"examDate"` // YYYY-MM-DD
	Theme       string `firestore:"theme,omitempty" json:"theme"`       // light, dark or system
	RefreshHash string `firestore:"refreshHash,omitempty" json:"-"`
	CreatedAt   string `firestore:"createdAt,omitempty" json:"createdAt"`
}
