package usecase

import "flickr-embed/domain/model"

// ApplyDefaults returns req with every unset option filled from defaults and
// an unset caption filled from the photo title.
func ApplyDefaults(req model.EmbedRequest, meta *model.PhotoMetadata, defaults model.EmbedDefaults) model.EmbedRequest {
	if req.Type == "" {
		req.Type = defaults.Type
	}
	if req.Location == "" {
		req.Location = defaults.Location
	}
	if req.Size == "" {
		req.Size = defaults.Size
	}
	if req.Caption == "" && meta != nil {
		req.Caption = meta.Title
	}
	return req
}
