package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"

	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/util"
)

// PhotoLoader resolves a card's image URL to a decoded image.
type PhotoLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// HTTPPhotoLoader downloads http(s) URLs. With AllowFiles set, anything
// else is opened as a local file path.
type HTTPPhotoLoader struct {
	Client     *http.Client
	AllowFiles bool
}

// NewHTTPPhotoLoader returns a loader that also reads local files, for the
// command line.
func NewHTTPPhotoLoader() *HTTPPhotoLoader {
	return &HTTPPhotoLoader{Client: util.NewHTTPClient(), AllowFiles: true}
}

// NewRemotePhotoLoader returns a loader limited to http(s) URLs, for
// requests arriving over the network.
func NewRemotePhotoLoader() *HTTPPhotoLoader {
	return &HTTPPhotoLoader{Client: util.NewHTTPClient()}
}

// CheckImageURL reports whether raw is an absolute http(s) URL. The empty
// string is allowed and means no photo.
func CheckImageURL(raw string) error {
	if raw == "" || isRemote(raw) {
		return nil
	}
	return apperrors.New(apperrors.ErrCodeInvalidInput, "image url must be an http(s) URL")
}

func isRemote(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (l *HTTPPhotoLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if !isRemote(ref) {
		if !l.AllowFiles {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "image url must be an http(s) URL")
		}
		img, err := imaging.Open(strings.TrimPrefix(ref, "file://"), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("open photo: %w", err)
		}
		return img, nil
	}
	body, err := util.GetBytes(ctx, l.Client, ref)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return img, nil
}
