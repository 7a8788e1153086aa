package model

// EmbedType selects how the image is framed.
type EmbedType string

const (
	EmbedTypeThumb     EmbedType = "thumb"
	EmbedTypeFrame     EmbedType = "frame"
	EmbedTypeFrameless EmbedType = "frameless"
)

// Location is the horizontal alignment of the rendered image.
type Location string

const (
	LocationLeft   Location = "left"
	LocationRight  Location = "right"
	LocationCenter Location = "center"
	LocationNone   Location = "none"
)

// SizeCode is the one-letter size selector accepted in the tag body.
type SizeCode string

const (
	SizeSquare    SizeCode = "s"
	SizeThumbnail SizeCode = "t"
	SizeSmall     SizeCode = "m"
	SizeMedium    SizeCode = "-"
	SizeLarge     SizeCode = "b"
)

// sizeLabels maps size codes to the labels Flickr uses for its size variants.
var sizeLabels = map[SizeCode]string{
	SizeSquare:    "Square",
	SizeThumbnail: "Thumbnail",
	SizeSmall:     "Small",
	SizeMedium:    "Medium",
	SizeLarge:     "Large",
}

// Label returns the Flickr size label for the code.
func (c SizeCode) Label() (string, bool) {
	label, ok := sizeLabels[c]
	return label, ok
}

// IsValidType reports whether s names an embed type.
func IsValidType(s string) bool {
	switch EmbedType(s) {
	case EmbedTypeThumb, EmbedTypeFrame, EmbedTypeFrameless:
		return true
	}
	return false
}

// IsValidLocation reports whether s names an alignment.
func IsValidLocation(s string) bool {
	switch Location(s) {
	case LocationLeft, LocationRight, LocationCenter, LocationNone:
		return true
	}
	return false
}

// IsValidSize reports whether s is a known size code.
func IsValidSize(s string) bool {
	_, ok := sizeLabels[SizeCode(s)]
	return ok
}

// EmbedRequest is the structured form of a <flickr> tag body.
// Empty fields are unset until defaults are applied.
type EmbedRequest struct {
	ID       string    `json:"id"`
	Type     EmbedType `json:"type,omitempty"`
	Location Location  `json:"location,omitempty"`
	Size     SizeCode  `json:"size,omitempty"`
	Caption  string    `json:"caption,omitempty"`
}

// EmbedDefaults is the deployment-wide fallback for unset options.
type EmbedDefaults struct {
	Type     EmbedType `json:"type"`
	Location Location  `json:"location"`
	Size     SizeCode  `json:"size"`
}
