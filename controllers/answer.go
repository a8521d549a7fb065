package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
	"stackmates/live"
	"stackmates/models"
)

// AddAnswer stores an answer to a question
func AddAnswer(c *gin.Context) {

	var (
		err      error
		data     models.Answer
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
	data.AnsBy = viewer.Username
	if data.AnsDateTime.IsZero() {
		data.AnsDateTime = time.Now()
	}

	if err = environment.Env.AnswerModel.Validate(data); err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	ID, err := environment.Env.AnswerModel.Create(c.Param("id"), &data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventAnswerUpdate, data)

	c.JSON(http.StatusCreated, Created{ID})
}
