package models

import (
	"context"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"stackmates/helpers"
)

// UploadModel stores avatar images with the media service and links them
// to the account
type UploadModel struct {
	Cloudinary *cloudinary.Cloudinary
	// assigned by the domain layer factory
	SetImage func(username string, url string) error
}

// SaveAvatar uploads a user's avatar and saves the delivery URL on the
// account. Re-uploads replace the previous image, the public ID is the
// username.
func (m UploadModel) SaveAvatar(username string, file io.Reader) (string, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := m.Cloudinary.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    "avatars",
		PublicID:  username,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	if err = m.SetImage(username, res.SecureURL); err != nil {
		return "", err
	}

	return res.SecureURL, nil
}
