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

// UserModel provides the logic to the interface and access to the database
type UserModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	// assigned by the domain layer factory
	GetNotifications func(IDs []primitive.ObjectID) ([]Notification, error)
}

// User account. The password field never leaves the model with a value,
// readers blank it before returning.
type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Username   string             `json:"username" bson:"username"`
	Password   string             `json:"password,omitempty" bson:"password"`
	EMail      string             `json:"email" bson:"email"`
	FirstName  string             `json:"firstname" bson:"firstname"`
	LastName   string             `json:"lastname" bson:"lastname"`
	Bio        string             `json:"bio" bson:"bio"`
	Image      string             `json:"image" bson:"image"`
	Friends    []string           `json:"friends" bson:"friends"`
	CreateDate time.Time          `json:"createDate" bson:"createDate"`
	// resolved from the stored references
	Notifications []Notification `json:"notifications" bson:"-"`
}

// userDoc is the persisted shape, notifications are stored as references
type userDoc struct {
	ID            primitive.ObjectID   `bson:"_id"`
	Username      string               `bson:"username"`
	Password      string               `bson:"password"`
	EMail         string               `bson:"email"`
	FirstName     string               `bson:"firstname"`
	LastName      string               `bson:"lastname"`
	Bio           string               `bson:"bio"`
	Image         string               `bson:"image"`
	Friends       []string             `bson:"friends"`
	CreateDate    time.Time            `bson:"createDate"`
	Notifications []primitive.ObjectID `bson:"notifications"`
}

// Validate checks the fields a client must supply when registering
func (m UserModel) Validate(user User) error {
	if strings.TrimSpace(user.Username) == "" ||
		strings.TrimSpace(user.Password) == "" ||
		strings.TrimSpace(user.EMail) == "" {
		return ErrInvalidUser
	}
	return nil
}

// CreateUser registers a new account. Username and e-mail must be unused,
// the password is stored as a hash only.
func (m UserModel) CreateUser(user *User) (string, error) {

	if m.UserExists(user.Username) {
		return "", ErrUserNameTaken
	}
	if m.EMailExists(user.EMail) {
		return "", ErrEMailTaken
	}

	hash, err := helpers.GenerateHash(user.Password)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	doc := userDoc{
		ID:            primitive.NewObjectID(),
		Username:      user.Username,
		Password:      hash,
		EMail:         user.EMail,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Bio:           user.Bio,
		Image:         user.Image,
		Friends:       []string{},
		CreateDate:    time.Now(),
		Notifications: []primitive.ObjectID{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = m.Collection.InsertOne(ctx, doc)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	user.ID = doc.ID
	user.Password = ""

	return doc.ID.Hex(), nil
}

// GetUserByName reads an account with its notifications resolved.
// The password hash is not returned.
func (m UserModel) GetUserByName(username string) (*User, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc userDoc
	err := m.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.resolve(doc)
}

// GetUserByID reads an account by its ID, notifications resolved
func (m UserModel) GetUserByID(ID string) (*User, error) {

	id, err := primitive.ObjectIDFromHex(ID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc userDoc
	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.resolve(doc)
}

func (m UserModel) resolve(doc userDoc) (*User, error) {

	notifications, err := m.GetNotifications(doc.Notifications)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:            doc.ID,
		Username:      doc.Username,
		EMail:         doc.EMail,
		FirstName:     doc.FirstName,
		LastName:      doc.LastName,
		Bio:           doc.Bio,
		Image:         doc.Image,
		Friends:       doc.Friends,
		CreateDate:    doc.CreateDate,
		Notifications: []Notification{},
	}

	// the stored reference order is kept
	byID := make(map[primitive.ObjectID]Notification, len(notifications))
	for _, n := range notifications {
		byID[n.ID] = n
	}
	for _, id := range doc.Notifications {
		if n, ok := byID[id]; ok {
			user.Notifications = append(user.Notifications, n)
		}
	}

	if user.Friends == nil {
		user.Friends = []string{}
	}

	return &user, nil
}

// UserExists reports whether a username is taken
func (m UserModel) UserExists(username string) bool {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := m.Collection.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false
	}

	return count > 0
}

// EMailExists reports whether an e-mail address is in use
func (m UserModel) EMailExists(eMail string) bool {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := m.Collection.CountDocuments(ctx, bson.M{"email": eMail})
	if err != nil {
		return false
	}

	return count > 0
}

// CheckPassword verifies credentials for a login. Lookup failure and a
// wrong password report the same error, so accounts can't be probed.
func (m UserModel) CheckPassword(username string, password string) (*User, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc userDoc
	err := m.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		return nil, ErrInvalidUser
	}

	if _, err = helpers.CompareHash(doc.Password, password); err != nil {
		return nil, ErrInvalidUser
	}

	return m.resolve(doc)
}

// UpdateUser saves the editable profile fields of an account
func (m UserModel) UpdateUser(user *User) error {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.UpdateOne(ctx,
		bson.M{"username": user.Username},
		bson.M{"$set": bson.M{
			"email":     user.EMail,
			"firstname": user.FirstName,
			"lastname":  user.LastName,
			"bio":       user.Bio,
		}})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetImage saves the avatar URL of an account
func (m UserModel) SetImage(username string, url string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := m.Collection.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"image": url}})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ChangePassword replaces an account's password after checking the old one
func (m UserModel) ChangePassword(username string, oldPassword string, newPassword string) error {

	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrInvalidPassword
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc userDoc
	err := m.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return helpers.WrapError(err, helpers.FuncName())
	}

	if _, err = helpers.CompareHash(doc.Password, oldPassword); err != nil {
		return ErrOldPassword
	}
	if newPassword == oldPassword {
		return ErrSamePassword
	}

	hash, err := helpers.GenerateHash(newPassword)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	_, err = m.Collection.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	return nil
}

// CheckFriendship verifies that a friendship between the two users may be
// established
func CheckFriendship(user *User, friend *User) error {
	if user == nil || friend == nil {
		return ErrUsersNotFound
	}
	if user.Username == friend.Username {
		return ErrSelfFriendship
	}
	if contains(user.Friends, friend.Username) || contains(friend.Friends, user.Username) {
		return ErrFriendshipExists
	}
	return nil
}

// AddFriends links two users. Both friend lists are written in one
// transaction, a failure can't leave the friendship one-sided.
func (m UserModel) AddFriends(username string, friendName string) error {

	// checked up front, pair can't tell the two names apart
	if username == friendName {
		return ErrSelfFriendship
	}

	user, friend, err := m.pair(username, friendName)
	if err != nil {
		return err
	}

	if err = CheckFriendship(user, friend); err != nil {
		return err
	}

	return m.writeFriends(username, friendName, "$addToSet")
}

// RemoveFriends unlinks two users, again in one transaction
func (m UserModel) RemoveFriends(username string, friendName string) error {

	if username == friendName {
		return ErrSelfFriendship
	}

	_, _, err := m.pair(username, friendName)
	if err != nil {
		return err
	}

	return m.writeFriends(username, friendName, "$pull")
}

func (m UserModel) pair(username string, friendName string) (*User, *User, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx,
		bson.M{"username": bson.M{"$in": []string{username, friendName}}})
	if err != nil {
		return nil, nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, nil, helpers.WrapError(err, helpers.FuncName())
	}

	var user, friend *User
	for i := range docs {
		u := User{Username: docs[i].Username, Friends: docs[i].Friends}
		switch u.Username {
		case username:
			user = &u
		case friendName:
			friend = &u
		}
	}
	if user == nil || friend == nil {
		return nil, nil, ErrUsersNotFound
	}

	return user, friend, nil
}

func (m UserModel) writeFriends(username string, friendName string, operator string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := m.Client.StartSession()
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := m.Collection.UpdateOne(sc,
			bson.M{"username": username},
			bson.M{operator: bson.M{"friends": friendName}})
		if err != nil {
			return nil, err
		}
		_, err = m.Collection.UpdateOne(sc,
			bson.M{"username": friendName},
			bson.M{operator: bson.M{"friends": username}})
		if err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	return nil
}

// FriendMap reads the friend lists of the given users in one query
// (used to decide the visibility of private questions)
func (m UserModel) FriendMap(usernames []string) (map[string][]string, error) {

	res := make(map[string][]string, len(usernames))
	if len(usernames) == 0 {
		return res, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := m.Collection.Find(ctx,
		bson.M{"username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	for _, doc := range docs {
		res[doc.Username] = doc.Friends
	}

	return res, nil
}
