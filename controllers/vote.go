package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
	"stackmates/live"
)

// CastVote registers a new vote, moves a switched one or removes a revoked one
func CastVote(c *gin.Context) {

	var apiError ErrorResponse

	// for enhanced security, read user from token
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

	data := struct {
		QuestionID string `json:"questionId" binding:"required"`
		Direction  string `json:"direction" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// the model rejects unknown directions
	result, err := environment.Env.VoteModel.Cast(data.QuestionID, viewer.Username, data.Direction)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventVoteUpdate, result)

	c.JSON(http.StatusOK, result)
}
