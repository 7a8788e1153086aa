package usecase

import "flickr-embed/domain/model"

// ResolveSize picks the first size variant whose label matches code. There is
// no nearest-size fallback.
func ResolveSize(code model.SizeCode, sizes []model.PhotoSize) (*model.ResolvedImage, error) {
	label, ok := code.Label()
	if !ok {
		return nil, model.NewSizeNotAvailableError(code)
	}
	for _, s := range sizes {
		if s.Label == label {
			return &model.ResolvedImage{URL: s.URL, Width: s.Width}, nil
		}
	}
	return nil, model.NewSizeNotAvailableError(code)
}
