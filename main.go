package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stackmates/authentication"
	"stackmates/controllers"
	"stackmates/database"
	"stackmates/environment"
	"stackmates/live"
	"stackmates/middleware"
	"stackmates/models"
)

var (
	router = gin.Default()
)

// runs BEFORE main, the order of package inits is undefined though
func init() {
	// load config
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func handleRequests() {
	router.Use(middleware.CORSMiddleware())

	router.GET("/test", controllers.Test)

	// auth-related
	router.POST("/login", controllers.Login)
	router.POST("/logout", authentication.TokenAuthMiddleware(), controllers.Logout)
	router.POST("/refresh", controllers.Refresh) // no middleware, the AT may be expired here
	router.POST("/register", controllers.Register)

	router.POST("/user/exists", controllers.UserExists)
	router.POST("/email/exists", controllers.EMailExists)

	// user-mgmt
	router.GET("/users/:name", authentication.TokenAuthMiddleware(), controllers.GetUser)
	router.PUT("/users/:name", authentication.TokenAuthMiddleware(), controllers.UpdateUser)
	router.POST("/user/changePass", authentication.TokenAuthMiddleware(), controllers.ChangePassword)
	router.POST("/user/avatar", authentication.TokenAuthMiddleware(), controllers.UploadAvatar)

	router.POST("/users/:name/friends", authentication.TokenAuthMiddleware(), controllers.AddFriend)
	router.DELETE("/users/:name/friends", authentication.TokenAuthMiddleware(), controllers.RemoveFriend)

	// notifications (friend requests)
	router.POST("/users/:name/notifications", authentication.TokenAuthMiddleware(), controllers.AddNotification)
	router.GET("/notifications/:id", authentication.TokenAuthMiddleware(), controllers.GetNotification)
	router.DELETE("/notifications/:id", authentication.TokenAuthMiddleware(), controllers.ClearNotification)
	router.POST("/notifications/:id/accept", authentication.TokenAuthMiddleware(), controllers.AcceptNotification)
	router.POST("/notifications/:id/decline", authentication.TokenAuthMiddleware(), controllers.DeclineNotification)

	// questions
	// GET has no BODY (Go/Gin & Postman support that, Angular does not) - hence parameters
	router.GET("/questions", controllers.ListQuestions)
	router.GET("/questions/:id", controllers.GetQuestion)
	router.POST("/questions", authentication.TokenAuthMiddleware(), controllers.AddQuestion)

	router.POST("/questions/:id/answers", authentication.TokenAuthMiddleware(), controllers.AddAnswer)
	router.POST("/questions/:id/comments", authentication.TokenAuthMiddleware(), controllers.AddComment(models.CommentOnQuestion))
	router.POST("/answers/:id/comments", authentication.TokenAuthMiddleware(), controllers.AddComment(models.CommentOnAnswer))

	router.POST("/votes", authentication.TokenAuthMiddleware(), controllers.CastVote)

	// tags
	router.GET("/tags", controllers.ListTags)
	router.GET("/tags/:name", controllers.GetTag)

	// visit analytics
	router.GET("/stats/visits", controllers.GetVisits)
	router.GET("/stats/visitors", authentication.TokenAuthMiddleware(), controllers.ListVisitors)

	router.GET("/monitor/requests", authentication.TokenAuthMiddleware(), controllers.CountRequests)
	router.POST("/monitor/flush", authentication.TokenAuthMiddleware(), controllers.FlushRequests)

	// live events (websocket)
	router.GET("/live", live.Handler(database.GetRedisConnection()))

	switch os.Getenv("APP_ENV") {
	case "DEV":
		router.Run(":" + os.Getenv("API_PORT"))
	case "PRD":
		router.RunTLS(":"+os.Getenv("API_PORT"), os.Getenv("APP_CERTFILE"), os.Getenv("APP_KEYFILE"))
	default:
		panic(fmt.Errorf("APP_ENV must be set"))
	}
}

func main() {
	// connect to the main database here (mongoDB)
	err := database.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseConnection()

	// connect to the JWT store (redis)
	err = authentication.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer authentication.CloseConnection()

	// connect to the live-event backbone (redis)
	err = database.OpenRedisConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseRedisConnection()

	// connect to the analytics store (influxDB)
	err = database.OpenInfluxConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseInfluxConnection()

	// initialize the models
	err = environment.Initialize()
	if err != nil {
		log.Fatal(err)
	}

	// keep the request registry small
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		for range ticker.C {
			environment.Env.Tracker.Requests.Flush()
		}
	}()

	fmt.Println("Stackmates running...")
	handleRequests()
}
