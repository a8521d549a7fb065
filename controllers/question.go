package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stackmates/apperror"
	"stackmates/environment"
	"stackmates/live"
	"stackmates/models"
)

// ListQuestions sends all questions the caller may see, filtered and sorted
// http://localhost:3000/questions?order=active&search=website [android]
func ListQuestions(c *gin.Context) {

	order := c.DefaultQuery("order", models.OrderNewest)
	search := c.Query("search")

	// guests see the public feed
	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	questions := environment.Env.QuestionModel.GetQuestionsByOrder(order)
	questions = models.FilterBySearch(questions, search)

	viewerName := ""
	if viewer != nil {
		viewerName = viewer.Username
	}

	// hide private questions of strangers
	askers := make([]string, 0, len(questions))
	for _, q := range questions {
		askers = append(askers, q.AskedBy)
	}
	friendsOf, err := environment.Env.UserModel.FriendMap(askers)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}
	questions = models.FilterVisible(questions, viewerName, friendsOf)

	// the friends feed only contains questions of the caller's friends
	if order == models.OrderFriends {
		if viewer == nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		res := make([]models.Question, 0, len(questions))
		for _, q := range questions {
			for _, friend := range viewer.Friends {
				if q.AskedBy == friend {
					res = append(res, q)
					break
				}
			}
		}
		questions = res
	}

	if len(questions) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetQuestion sends one question with its answers and comments.
// A logged-in caller is recorded as a viewer, unless this is a page refresh.
func GetQuestion(c *gin.Context) {

	questionID := c.Param("id")

	viewer, err := currentUser(c.Request)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	question, err := environment.Env.QuestionModel.GetQuestion(questionID)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// private questions are reserved to the asker and their friends,
	// a denied caller must not show up in the viewer list
	if !question.Public {
		if viewer == nil {
			status, apiError := HandleError(apperror.ErrPrivate)
			c.JSON(status, apiError)
			return
		}
		if viewer.Username != question.AskedBy {
			friendsOf, err := environment.Env.UserModel.FriendMap([]string{question.AskedBy})
			if err != nil {
				status, apiError := HandleError(err)
				c.JSON(status, apiError)
				return
			}
			if !models.CanView(*question, viewer.Username, friendsOf) {
				status, apiError := HandleError(apperror.ErrNotFriend)
				c.JSON(status, apiError)
				return
			}
		}
	}

	// page refreshes don't count as new visits
	if viewer != nil && environment.Env.Tracker.Requests.Continue(c.ClientIP(), questionID) {
		views, err := environment.Env.QuestionModel.AddView(questionID, viewer.Username)
		if err == nil {
			question.Views = views
			environment.Env.Tracker.SaveVisit(questionID, viewer.Username)
			environment.Env.Broadcaster.Publish(live.EventViewsUpdate, question)
		}
	}

	c.JSON(http.StatusOK, question)
}

// AddQuestion stores a new question
func AddQuestion(c *gin.Context) {

	var (
		err      error
		data     models.Question
		apiError ErrorResponse
	)

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

	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// the asker comes from the token, not from the request
	data.AskedBy = viewer.Username
	if data.AskDateTime.IsZero() {
		data.AskDateTime = time.Now()
	}

	if err = environment.Env.QuestionModel.Validate(data); err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	ID, err := environment.Env.QuestionModel.Create(&data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Broadcaster.Publish(live.EventQuestionUpdate, data)

	c.JSON(http.StatusCreated, Created{ID})
}
