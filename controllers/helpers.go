package controllers

import (
	"net/http"

	"stackmates/authentication"
	"stackmates/environment"
	"stackmates/models"
)

// Created is the standard response for new items
type Created struct {
	ID string `json:"id"`
}

// Uploaded is the standard response for new uploads
type Uploaded struct {
	URL string `json:"url"`
}

// currentUser resolves the calling user from the access token.
// Routes open to guests receive nil without an error.
func currentUser(r *http.Request) (*models.User, error) {

	userID, err := authentication.Authenticate(r)
	if err != nil {
		// not logged in is fine on public routes
		return nil, nil
	}

	user, err := environment.Env.UserModel.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}
