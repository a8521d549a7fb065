package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackmates/apperror"
	"stackmates/environment"
)

// ListTags sends all tags with their usage counts
func ListTags(c *gin.Context) {

	tags, err := environment.Env.TagModel.CountAll()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	if len(tags) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTag sends one tag
func GetTag(c *gin.Context) {

	tag, err := environment.Env.TagModel.GetByName(c.Param("name"))
	if err != nil {
		// nothing found (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, tag)
}
