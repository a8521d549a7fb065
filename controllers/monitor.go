package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackmates/environment"
)

// Test simply reports that the service is alive
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "running"})
}

// CountRequests reports how many different clients are currently tracked
func CountRequests(c *gin.Context) {

	viewer, err := currentUser(c.Request)
	if err != nil || viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, environment.Env.Tracker.Requests.Count())
}

// FlushRequests removes expired entries from the request registry
func FlushRequests(c *gin.Context) {

	viewer, err := currentUser(c.Request)
	if err != nil || viewer == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	environment.Env.Tracker.Requests.Flush()

	c.Status(http.StatusOK)
}
