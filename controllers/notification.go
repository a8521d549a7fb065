package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
	"stackmates/live"
	"stackmates/models"
)

// AddNotification delivers a friend request to another user's inbox
// POST /users/:name/notifications
func AddNotification(c *gin.Context) {

	var (
		err      error
		data     models.Notification
		apiError ErrorResponse
	)

	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// the sender comes from the token, not from the request
	data.Sender = viewer.Username
	if data.Type == "" {
		data.Type = models.NotificationRequest
	}

	if err = environment.Env.NotificationModel.Validate(data); err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	receiver, err := environment.Env.UserModel.GetUserByName(c.Param("name"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	ID, err := environment.Env.NotificationModel.Create(receiver.ID.Hex(), &data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventNotificationUpdate, data)

	c.JSON(http.StatusCreated, Created{ID})
}

// GetNotification sends one notification
func GetNotification(c *gin.Context) {

	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	notification, err := environment.Env.NotificationModel.GetByID(c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// the inbox is private
	if notification.Receiver != viewer.Username && notification.Sender != viewer.Username {
		status, apiError := HandleError(models.ErrNotificationNotOwned)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// ClearNotification removes a notification from the caller's inbox
// DELETE /notifications/:id
func ClearNotification(c *gin.Context) {

	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	err = environment.Env.NotificationModel.Clear(viewer.ID.Hex(), c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventClearNotification, gin.H{
		"username":       viewer.Username,
		"notificationId": c.Param("id"),
	})

	c.Status(http.StatusOK)
}

// AcceptNotification turns a friend request in the caller's inbox into a
// friendship and notifies the sender
// POST /notifications/:id/accept
func AcceptNotification(c *gin.Context) {

	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	accepted, err := environment.Env.NotificationModel.Accept(viewer.ID.Hex(), c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventAddFriend, gin.H{
		"username": accepted.Receiver,
		"friend":   accepted.Sender,
	})
	environment.Env.Broadcaster.Publish(live.EventNotificationUpdate, accepted)

	c.JSON(http.StatusOK, accepted)
}

// DeclineNotification removes a friend request without any further effect
// POST /notifications/:id/decline
func DeclineNotification(c *gin.Context) {

	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	if viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	err = environment.Env.NotificationModel.Clear(viewer.ID.Hex(), c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventClearNotification, gin.H{
		"username":       viewer.Username,
		"notificationId": c.Param("id"),
	})

	c.Status(http.StatusOK)
}
