package services

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gateprep/model"
)

// UserExist reports whether any profile already uses the email.
func UserExist(ctx context.Context, fb *firestore.Client, email string) (bool, error) {
	query := fb.Collection(usersCollection).Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// GetUserByEmail finds the profile document for an email.
func GetUserByEmail(ctx context.Context, fb *firestore.Client, email string) (*model.User, error) {
	query := fb.Collection(usersCollection).Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, model.ErrUserNotFound
	}

	var user model.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, err
	}
	user.UserID = docs[0].Ref.ID
	return &user, nil
}

// GetUser fetches the profile stored under uid.
func GetUser(ctx context.Context, fb *firestore.Client, uid string) (*model.User, error) {
	doc, err := fb.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.UserID = doc.Ref.ID
	return &user, nil
}

// DeleteUser removes the profile document itself.
func DeleteUser(ctx context.Context, fb *firestore.Client, uid string) error {
	_, err := fb.Collection(usersCollection).Doc(uid).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// SaveRefreshHash stores the hash of the latest refresh token on the
// profile, revoking any previously issued one.
func SaveRefreshHash(ctx context.Context, fb *firestore.Client, uid, hash string) error {
	_, err := fb.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "refreshHash", Value: hash},
	})
	return err
}

// EnsureUser returns the profile under uid, creating a default one on first
// sign-in. Subcollections need a parent document, so this runs before any
// task is written for a new account.
func EnsureUser(ctx context.Context, fb *firestore.Client, uid, email, name string) (*model.User, error) {
	userRef := fb.Collection(usersCollection).Doc(uid)
	doc, err := userRef.Get(ctx)
	if err == nil {
		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return nil, err
		}
		user.UserID = uid
		return &user, nil
	}
	if status.Code(err) != codes.NotFound {
		return nil, err
	}

	user := model.User{
		Name:      name,
		Email:     email,
		Exam:      model.ExamGATE,
		Theme:     "system",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if _, err := userRef.Set(ctx, user); err != nil {
		return nil, err
	}
	user.UserID = uid
	return &user, nil
}
