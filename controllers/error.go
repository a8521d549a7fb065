package controllers

import (
	"fmt"
	"net/http"

	"stackmates/apperror"
	"stackmates/models"
)

// ErrorResponse is the standardized error structure which may be returned by any API
type ErrorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
}

// HandleError encodes the std ErrorResponse
func HandleError(err error) (httpStatus int, apiError ErrorResponse) {

	if err == nil {
		apiError.Code = 0
		apiError.Message = ""

		return 0, apiError
	}

	fmt.Println(err)
	switch err {
	// system
	case apperror.ErrMultipleRecords:
		apiError.Code = MultipleRecords
		httpStatus = http.StatusInternalServerError
	case apperror.ErrRecordChanged:
		apiError.Code = RecordChanged
		httpStatus = http.StatusInternalServerError
	case apperror.ErrDenied:
		apiError.Code = ActionDenied
		httpStatus = http.StatusUnprocessableEntity
	// permissions
	case apperror.ErrNotFriend:
		apiError.Code = PermissionNotShared
		httpStatus = http.StatusUnprocessableEntity
	case apperror.ErrPrivate:
		apiError.Code = PermissionPrivate
		httpStatus = http.StatusUnprocessableEntity
	// user
	case models.ErrUserNameTaken:
		apiError.Code = UserNameTaken
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrEMailTaken:
		apiError.Code = EMailTaken
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidUser:
		apiError.Code = InvalidLogin
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrUserNotFound:
		apiError.Code = UserNotFound
		httpStatus = http.StatusNotFound
	case models.ErrInvalidPassword:
		apiError.Code = InvalidPassword
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrOldPassword:
		apiError.Code = OldPasswordWrong
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrSamePassword:
		apiError.Code = SamePassword
		httpStatus = http.StatusUnprocessableEntity
	// friends
	case models.ErrUsersNotFound:
		apiError.Code = UsersNotFound
		httpStatus = http.StatusNotFound
	case models.ErrSelfFriendship:
		apiError.Code = SelfFriendship
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrFriendshipExists:
		apiError.Code = FriendshipExists
		httpStatus = http.StatusUnprocessableEntity
	// question / attachment
	case models.ErrQuestionNotFound:
		apiError.Code = QuestionNotFound
		httpStatus = http.StatusNotFound
	case models.ErrInvalidQuestion:
		apiError.Code = InvalidQuestion
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidAnswer:
		apiError.Code = InvalidAnswer
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidComment:
		apiError.Code = InvalidComment
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidVote:
		apiError.Code = InvalidVote
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrTargetNotFound:
		apiError.Code = TargetNotFound
		httpStatus = http.StatusNotFound
	// notification
	case models.ErrInvalidNotification:
		apiError.Code = InvalidNotification
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrNotificationNotFound:
		apiError.Code = NotificationNotFound
		httpStatus = http.StatusNotFound
	case models.ErrNotificationNotOwned:
		apiError.Code = NotificationNotOwned
		httpStatus = http.StatusUnprocessableEntity
	default:
		apiError.Code = SystemError
		httpStatus = http.StatusInternalServerError
	}
	apiError.Message = apiError.String(apiError.Code)
	return httpStatus, apiError
}

// Application Error Codes (API Errors)
const (
	// client/api
	InvalidJSON int32 = (10000 + iota)
	InvalidRequest
	InvalidLogin
	// generic system
	MultipleRecords
	RecordChanged
	ActionDenied
	// permission
	PermissionNotShared
	PermissionPrivate
	// user
	UserNameTaken
	EMailTaken
	InvalidPassword
	OldPasswordWrong
	SamePassword
	UserNotFound
	// friends
	UsersNotFound
	SelfFriendship
	FriendshipExists
	// question / attachment
	QuestionNotFound
	InvalidQuestion
	InvalidAnswer
	InvalidComment
	InvalidVote
	TargetNotFound
	// notification
	InvalidNotification
	NotificationNotFound
	NotificationNotOwned
	SystemError = 99999
)

func (er ErrorResponse) String(code int32) string {
	msg := ""
	switch code {
	// common (system)
	case InvalidJSON:
		msg = "Invalid JSON"
	case InvalidRequest:
		msg = "Invalid Request" // JSON was correct, data was not
	case InvalidLogin:
		msg = "invalid user name or password"
	case MultipleRecords:
		msg = "multiple records found"
	case RecordChanged:
		msg = "record changed by another user"
	case ActionDenied:
		msg = "update/delete action not allowed"
	// permission (item access)
	case PermissionNotShared:
		msg = "item is not shared" // viewer is not friends with the asker
	case PermissionPrivate:
		msg = "item is private"
	// user
	case UserNameTaken:
		msg = models.ErrUserNameTaken.Error()
	case EMailTaken:
		msg = models.ErrEMailTaken.Error()
	case InvalidPassword:
		msg = models.ErrInvalidPassword.Error()
	case OldPasswordWrong:
		msg = models.ErrOldPassword.Error()
	case SamePassword:
		msg = models.ErrSamePassword.Error()
	case UserNotFound:
		msg = models.ErrUserNotFound.Error()
	// friends
	case UsersNotFound:
		msg = models.ErrUsersNotFound.Error()
	case SelfFriendship:
		msg = models.ErrSelfFriendship.Error()
	case FriendshipExists:
		msg = models.ErrFriendshipExists.Error()
	// question / attachment
	case QuestionNotFound:
		msg = models.ErrQuestionNotFound.Error()
	case InvalidQuestion:
		msg = models.ErrInvalidQuestion.Error()
	case InvalidAnswer:
		msg = models.ErrInvalidAnswer.Error()
	case InvalidComment:
		msg = models.ErrInvalidComment.Error()
	case InvalidVote:
		msg = models.ErrInvalidVote.Error()
	case TargetNotFound:
		msg = models.ErrTargetNotFound.Error()
	// notification
	case InvalidNotification:
		msg = models.ErrInvalidNotification.Error()
	case NotificationNotFound:
		msg = models.ErrNotificationNotFound.Error()
	case NotificationNotOwned:
		msg = models.ErrNotificationNotOwned.Error()
	case SystemError:
		msg = "Server Problem"
	}

	return msg
}
