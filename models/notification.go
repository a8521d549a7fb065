package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stackmates/helpers"
)

// notification types
const (
	NotificationRequest = "request"
	NotificationAccept  = "accept"
)

// NotificationModel provides the logic to the interface and access to the database
type NotificationModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	Users      *mongo.Collection
	// assigned by the domain layer factory
	AddFriends func(username string, friendName string) error
}

// Notification delivered to a user's inbox. Notifications are immutable,
// clearing or accepting one removes it from the receiver's list.
type Notification struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Sender   string             `json:"sender" bson:"sender"`
	Receiver string             `json:"receiver" bson:"receiver"`
	Type     string             `json:"type" bson:"type"`
	SentAt   time.Time          `json:"sentAt" bson:"sentAt"`
}

// Validate checks the fields a client must supply
func (m NotificationModel) Validate(notification Notification) error {
	if strings.TrimSpace(notification.Sender) == "" ||
		strings.TrimSpace(notification.Receiver) == "" {
		return ErrInvalidNotification
	}
	if notification.Type != NotificationRequest && notification.Type != NotificationAccept {
		return ErrInvalidNotification
	}
	return nil
}

// Create stores a notification and delivers it to the receiver given by
// user ID. A friend request towards an existing friend is rejected.
func (m NotificationModel) Create(userID string, notification *Notification) (string, error) {

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var receiver struct {
		Username string   `bson:"username"`
		Friends  []string `bson:"friends"`
	}
	err = m.Users.FindOne(ctx, bson.M{"_id": userOID}).Decode(&receiver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrUserNotFound
		}
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	if notification.Type == NotificationRequest &&
		contains(receiver.Friends, notification.Sender) {
		return "", ErrFriendshipExists
	}

	notification.ID = primitive.NewObjectID()
	notification.Receiver = receiver.Username
	if notification.SentAt.IsZero() {
		notification.SentAt = time.Now()
	}

	_, err = m.Collection.InsertOne(ctx, notification)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	_, err = m.Users.UpdateOne(ctx,
		bson.M{"_id": userOID},
		bson.M{"$push": bson.M{"notifications": notification.ID}})
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return notification.ID.Hex(), nil
}

// GetByID reads one notification
func (m NotificationModel) GetByID(notificationID string) (*Notification, error) {

	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var notification Notification
	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotificationNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &notification, nil
}

// FindByIDs reads a set of notifications
func (m NotificationModel) FindByIDs(IDs []primitive.ObjectID) ([]Notification, error) {

	if len(IDs) == 0 {
		return []Notification{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": IDs}})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer cursor.Close(ctx)

	var notifications []Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	if notifications == nil {
		notifications = []Notification{}
	}

	return notifications, nil
}

// Clear removes a notification from a user's inbox. The stored document
// remains, only the reference goes away.
func (m NotificationModel) Clear(userID string, notificationID string) error {

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	notificationOID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Users.UpdateOne(ctx,
		bson.M{"_id": userOID},
		bson.M{"$pull": bson.M{"notifications": notificationOID}})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Accept turns a friend request into a friendship. The request must sit in
// the inbox of the accepting user. On success the request is cleared and
// the original sender gets an acceptance notification, which is returned.
func (m NotificationModel) Accept(userID string, notificationID string) (*Notification, error) {

	request, err := m.GetByID(notificationID)
	if err != nil {
		return nil, err
	}

	user, err := m.userByID(userID)
	if err != nil {
		return nil, err
	}
	if request.Receiver != user.Username {
		return nil, ErrNotificationNotOwned
	}
	if request.Type != NotificationRequest {
		return nil, ErrInvalidNotification
	}

	// the steps below are not transactional. If clearing or notifying fails
	// after the friend edge is written, the request stays in the inbox and
	// the accept is retried, so an existing friendship counts as done here.
	if err = m.AddFriends(request.Sender, request.Receiver); !friendEdgeDone(err) {
		return nil, err
	}

	if err = m.Clear(userID, notificationID); err != nil {
		return nil, err
	}

	accepted := Notification{
		Sender:   request.Receiver,
		Receiver: request.Sender,
		Type:     NotificationAccept,
		SentAt:   time.Now(),
	}

	sender, err := m.userByName(request.Sender)
	if err != nil {
		return nil, err
	}

	if _, err = m.Create(sender.ID.Hex(), &accepted); err != nil {
		return nil, err
	}

	return &accepted, nil
}

// friendEdgeDone reports whether the friend edge of an accepted request is
// in place, counting a pre-existing friendship as success
func friendEdgeDone(err error) bool {
	return err == nil || err == ErrFriendshipExists
}

func (m NotificationModel) userByID(userID string) (*User, error) {

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user User
	err = m.Users.FindOne(ctx, bson.M{"_id": userOID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &user, nil
}

func (m NotificationModel) userByName(username string) (*User, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user User
	err := m.Users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return &user, nil
}
