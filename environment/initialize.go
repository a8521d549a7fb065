package environment

import (
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"

	"stackmates/analytics"
	"stackmates/client"
	"stackmates/database"
	"stackmates/live"
	"stackmates/models"
)

// Environment is used for dependency-injection (package de-coupling)
type Environment struct {
	Tracker           *analytics.Tracker
	Broadcaster       *live.Broadcaster
	UserModel         models.UserModel
	QuestionModel     models.QuestionModel
	AnswerModel       models.AnswerModel
	CommentModel      models.CommentModel
	TagModel          models.TagModel
	VoteModel         models.VoteModel
	NotificationModel models.NotificationModel
	UploadModel       models.UploadModel
}

// newEnv operates as the constructor, wiring the models together (private)
func newEnv(mongoClient *mongo.Client, redisClient *redis.Client) (*Environment, error) {
	env := &Environment{}

	db := mongoClient.Database(os.Getenv("DB_NAME"))

	// visit analytics, always created so the models need no nil checks
	env.Tracker = new(analytics.Tracker)
	env.Tracker.VisitorAPI = database.GetInfluxAPI()
	env.Tracker.Requests = new(client.Registry)
	env.Tracker.Requests.Initialize()

	// live events towards connected clients
	env.Broadcaster = live.NewBroadcaster(redisClient)

	env.UserModel.Client = mongoClient
	env.UserModel.Collection = db.Collection(database.CollectionUsers)

	env.TagModel.Client = mongoClient
	env.TagModel.Collection = db.Collection(database.CollectionTags)
	env.TagModel.Questions = db.Collection(database.CollectionQuestions)

	env.CommentModel.Client = mongoClient
	env.CommentModel.Collection = db.Collection(database.CollectionComments)
	env.CommentModel.Questions = db.Collection(database.CollectionQuestions)
	env.CommentModel.Answers = db.Collection(database.CollectionAnswers)

	env.AnswerModel.Client = mongoClient
	env.AnswerModel.Collection = db.Collection(database.CollectionAnswers)
	env.AnswerModel.Questions = db.Collection(database.CollectionQuestions)
	env.AnswerModel.GetComments = env.CommentModel.FindByIDs

	env.QuestionModel.Client = mongoClient
	env.QuestionModel.Collection = db.Collection(database.CollectionQuestions)
	env.QuestionModel.GetAnswers = env.AnswerModel.FindByIDs
	env.QuestionModel.GetComments = env.CommentModel.FindByIDs
	env.QuestionModel.GetTags = env.TagModel.FindByIDs
	env.QuestionModel.ProcessTags = env.TagModel.Process

	env.VoteModel.Client = mongoClient
	env.VoteModel.Collection = db.Collection(database.CollectionQuestions)

	env.NotificationModel.Client = mongoClient
	env.NotificationModel.Collection = db.Collection(database.CollectionNotifications)
	env.NotificationModel.Users = db.Collection(database.CollectionUsers)
	env.NotificationModel.AddFriends = env.UserModel.AddFriends

	// inject notification look-up after its model is wired
	env.UserModel.GetNotifications = env.NotificationModel.FindByIDs

	// media service for avatars (reads CLOUDINARY_URL)
	cld, err := cloudinary.New()
	if err != nil {
		return nil, err
	}
	env.UploadModel.Cloudinary = cld
	env.UploadModel.SetImage = env.UserModel.SetImage

	return env, nil
}

// Env is the singleton registry
var Env *Environment

// Initialize injects the database connections to the models
// (do not confuse with package init)
func Initialize() error {
	var err error
	Env, err = newEnv(database.GetConnection(), database.GetRedisConnection())
	return err
}
