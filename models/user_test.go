package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFriendship(t *testing.T) {

	alice := &User{Username: "alice", Friends: []string{}}
	bob := &User{Username: "bob", Friends: []string{}}

	assert.NoError(t, CheckFriendship(alice, bob))
}

func TestCheckFriendshipSelf(t *testing.T) {

	alice := &User{Username: "alice"}

	err := CheckFriendship(alice, alice)
	assert.Equal(t, ErrSelfFriendship, err)
	assert.EqualError(t, err, "Users cannot be friends with themselves")
}

func TestCheckFriendshipExisting(t *testing.T) {

	alice := &User{Username: "alice", Friends: []string{"bob"}}
	bob := &User{Username: "bob", Friends: []string{"alice"}}

	err := CheckFriendship(alice, bob)
	assert.Equal(t, ErrFriendshipExists, err)
	assert.EqualError(t, err, "Friendship already exists")
}

func TestCheckFriendshipOneSidedEdge(t *testing.T) {

	// a half-written friendship still counts as existing
	alice := &User{Username: "alice", Friends: []string{"bob"}}
	bob := &User{Username: "bob", Friends: []string{}}

	assert.Equal(t, ErrFriendshipExists, CheckFriendship(alice, bob))
	assert.Equal(t, ErrFriendshipExists, CheckFriendship(bob, alice))
}

func TestCheckFriendshipMissingUser(t *testing.T) {

	alice := &User{Username: "alice"}

	assert.Equal(t, ErrUsersNotFound, CheckFriendship(alice, nil))
	assert.Equal(t, ErrUsersNotFound, CheckFriendship(nil, alice))
}

func TestAddFriendsSelf(t *testing.T) {

	// rejected before the database is touched, whatever alice's state is
	m := UserModel{}

	err := m.AddFriends("alice", "alice")
	assert.Equal(t, ErrSelfFriendship, err)
	assert.EqualError(t, err, "Users cannot be friends with themselves")
}

func TestRemoveFriendsSelf(t *testing.T) {

	m := UserModel{}

	assert.Equal(t, ErrSelfFriendship, m.RemoveFriends("alice", "alice"))
}

func TestUserValidate(t *testing.T) {

	m := UserModel{}

	assert.NoError(t, m.Validate(User{Username: "alice", Password: "secret-pwd", EMail: "a@b.c"}))
	assert.Equal(t, ErrInvalidUser, m.Validate(User{Username: "alice", Password: "secret-pwd"}))
	assert.Equal(t, ErrInvalidUser, m.Validate(User{Username: "  ", Password: "secret-pwd", EMail: "a@b.c"}))
}
