package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// Upload folders accepted from clients.
const (
	FolderPhotos       = "photos"
	FolderCertificates = "certificates"
)

// ErrInvalidToken is returned for delete tokens that could never have been issued.
var ErrInvalidToken = apperrors.NewBadRequestError("Invalid delete token")

// Storage stores opaque file bytes and hands back references to them.
type Storage interface {
	// Upload stores r under folder and returns its public URL plus a delete token.
	Upload(ctx context.Context, name, contentType string, r io.Reader, folder string) (models.FileRef, error)

	// Delete removes the object identified by token. Unknown tokens yield apperrors.ErrFileNotFound.
	Delete(ctx context.Context, token string) error
}

// ValidFolder reports whether folder is one of the accepted upload folders.
func ValidFolder(folder string) bool {
	return folder == FolderPhotos || folder == FolderCertificates
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// objectKey builds a collision-free key, keeping the original extension.
func objectKey(folder, name string) string {
	ext := strings.ToLower(path.Ext(unsafeChars.ReplaceAllString(name, "_")))
	key := uuid.New().String() + ext
	if folder != "" {
		key = folder + "/" + key
	}
	return key
}

// cleanToken rejects tokens that escape the storage root.
func cleanToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	cleaned := path.Clean("/" + token)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(token, "/") || strings.HasPrefix(cleaned, "..") {
		return "", ErrInvalidToken
	}
	return cleaned, nil
}

func wrapNotFound(token string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, token)
}
