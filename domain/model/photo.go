package model

// PhotoInfo is the subset of flickr.photos.getInfo the embed needs.
type PhotoInfo struct {
	Title   string `json:"title"`
	LinkURL string `json:"link_url"`
}

// PhotoSize is one size variant from flickr.photos.getSizes.
type PhotoSize struct {
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// PhotoMetadata combines photo info and its size variants. This is the
// value stored in the metadata cache.
type PhotoMetadata struct {
	Title   string      `json:"title"`
	LinkURL string      `json:"link_url"`
	Sizes   []PhotoSize `json:"sizes"`
}

// ResolvedImage is the size variant chosen for rendering.
type ResolvedImage struct {
	URL     string
	Width   int
	LinkURL string
}
