package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
	"stackmates/live"
	"stackmates/models"
)

// GetUser sends a profile, notifications included
func GetUser(c *gin.Context) {

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

	user, err := environment.Env.UserModel.GetUserByName(c.Param("name"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// only the owner sees their inbox
	if user.Username != viewer.Username {
		user.Notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, &user)
}

// UpdateUser saves the editable profile fields
func UpdateUser(c *gin.Context) {

	var (
		err      error
		data     models.User
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

	// accounts can only be edited by their owner
	data.Username = viewer.Username
	data.EMail = strings.TrimSpace(data.EMail)
	if len(data.EMail) == 0 {
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	if err = environment.Env.UserModel.UpdateUser(&data); err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventUserUpdate, data.Username)

	c.Status(http.StatusOK)
}

// ChangePassword sets a new password
func ChangePassword(c *gin.Context) {

	var apiError ErrorResponse

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

	// request data
	data := struct {
		CurrentPWD string `json:"currentPWD" binding:"required"`
		NewPWD     string `json:"newPWD" binding:"required"`
	}{}

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// simple cleansing (Gin does not trim)
	data.CurrentPWD = strings.TrimSpace(data.CurrentPWD)
	data.NewPWD = strings.TrimSpace(data.NewPWD)

	err = environment.Env.UserModel.ChangePassword(viewer.Username, data.CurrentPWD, data.NewPWD)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.Status(http.StatusOK)
}

// AddFriend links the caller with another user directly
// (the usual way runs through an accepted friend request)
func AddFriend(c *gin.Context) {

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

	friendName := c.Param("name")

	if err = environment.Env.UserModel.AddFriends(viewer.Username, friendName); err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventAddFriend, gin.H{
		"username": viewer.Username,
		"friend":   friendName,
	})

	c.Status(http.StatusOK)
}

// RemoveFriend unlinks the caller from one of their friends
func RemoveFriend(c *gin.Context) {

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

	friendName := c.Param("name")

	if err = environment.Env.UserModel.RemoveFriends(viewer.Username, friendName); err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventRemoveFriend, gin.H{
		"username": viewer.Username,
		"friend":   friendName,
	})

	c.Status(http.StatusOK)
}
