package models

import (
	"errors"
)

// custom error types (generic types found in apperror package)
// messages are sent to clients as-is, so they are kept short and readable

// user
var (
	ErrUserNameTaken   = errors.New("Username already exists.")
	ErrEMailTaken      = errors.New("Email is already in use.")
	ErrInvalidUser     = errors.New("invalid user name or password")
	ErrUserNotFound    = errors.New("User not found")
	ErrInvalidPassword = errors.New("Information is invalid")
	ErrOldPassword     = errors.New("Old password is incorrect")
	ErrSamePassword    = errors.New("New password is the same as the old password")
)

// friends
var (
	ErrUsersNotFound    = errors.New("One or both users not found")
	ErrSelfFriendship   = errors.New("Users cannot be friends with themselves")
	ErrFriendshipExists = errors.New("Friendship already exists")
)

// question / attachment
var (
	ErrQuestionNotFound = errors.New("Question not found!")
	ErrInvalidQuestion  = errors.New("Invalid question")
	ErrInvalidAnswer    = errors.New("Invalid answer")
	ErrInvalidComment   = errors.New("Invalid comment")
	ErrInvalidVote      = errors.New("Invalid vote")
	ErrTargetNotFound   = errors.New("comment target not found")
)

// notification
var (
	ErrInvalidNotification  = errors.New("Invalid notification")
	ErrNotificationNotFound = errors.New("Notification not found")
	ErrNotificationNotOwned = errors.New("notification does not belong to this user")
)
