package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationValidate(t *testing.T) {

	m := NotificationModel{}

	assert.NoError(t, m.Validate(Notification{Sender: "alice", Receiver: "bob", Type: NotificationRequest}))
	assert.NoError(t, m.Validate(Notification{Sender: "bob", Receiver: "alice", Type: NotificationAccept}))
}

func TestNotificationValidateMissingFields(t *testing.T) {

	m := NotificationModel{}

	err := m.Validate(Notification{Receiver: "bob", Type: NotificationRequest})
	assert.Equal(t, ErrInvalidNotification, err)
	assert.EqualError(t, err, "Invalid notification")

	assert.Equal(t, ErrInvalidNotification,
		m.Validate(Notification{Sender: "alice", Type: NotificationRequest}))
}

func TestNotificationValidateUnknownType(t *testing.T) {

	m := NotificationModel{}

	assert.Equal(t, ErrInvalidNotification,
		m.Validate(Notification{Sender: "alice", Receiver: "bob", Type: "poke"}))
}

func TestFriendEdgeDone(t *testing.T) {

	assert.True(t, friendEdgeDone(nil))

	// a retried accept finds the edge already written and carries on
	assert.True(t, friendEdgeDone(ErrFriendshipExists))

	assert.False(t, friendEdgeDone(ErrSelfFriendship))
	assert.False(t, friendEdgeDone(ErrUsersNotFound))
}
