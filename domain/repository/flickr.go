package repository

import (
	"context"

	"flickr-embed/domain/model"
)

// IFlickr is the remote photo service. A nil result with a nil error
// means the photo has no info or no sizes.
type IFlickr interface {
	GetPhotoInfo(ctx context.Context, photoID string) (*model.PhotoInfo, error)
	GetPhotoSizes(ctx context.Context, photoID string) ([]model.PhotoSize, error)
}
