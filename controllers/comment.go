package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
	"stackmates/live"
	"stackmates/models"
)

// AddComment attaches a comment to a question or an answer
// POST /questions/:id/comments | /answers/:id/comments
func AddComment(targetType string) gin.HandlerFunc {
	return func(c *gin.Context) {

		var (
			err      error
			data     models.Comment
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

		// the author comes from the token, not from the request
		data.CommentBy = viewer.Username
		if data.CommentDateTime.IsZero() {
			data.CommentDateTime = time.Now()
		}

		if err = environment.Env.CommentModel.Validate(data); err != nil {
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
			return
		}

		ID, err := environment.Env.CommentModel.Attach(c.Param("id"), targetType, &data)
		if err != nil {
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
			return
		}

		environment.Env.Broadcaster.Publish(live.EventCommentUpdate, data)

		c.JSON(http.StatusCreated, Created{ID})
	}
}
