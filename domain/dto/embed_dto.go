package dto

// TagRenderRequest is the body of POST /api/tags/:name/render.
type TagRenderRequest struct {
	Body       string            `json:"body"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Dir        string            `json:"dir,omitempty"`
}

// ExpandRequest is the body of POST /api/expand.
type ExpandRequest struct {
	Content string `json:"content" binding:"required"`
	Dir     string `json:"dir,omitempty"`
}

// RenderResponse carries rendered markup back to the caller.
type RenderResponse struct {
	HTML string `json:"html"`
}

// Res is the generic error envelope.
type Res struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}
