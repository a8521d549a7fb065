package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
	"stackmates/live"
)

// UploadAvatar stores a new profile image for the calling user
func UploadAvatar(c *gin.Context) {

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

	// single file (no post body available at forms)
	file, err := c.FormFile("file")
	if err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	src, err := file.Open()
	if err != nil {
		apiError.Code = SystemError
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusInternalServerError, apiError)
		return
	}
	defer src.Close()

	url, err := environment.Env.UploadModel.SaveAvatar(viewer.Username, src)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventUserUpdate, viewer.Username)

	c.JSON(http.StatusCreated, Uploaded{url})
}
