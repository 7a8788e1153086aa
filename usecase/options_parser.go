package usecase

import (
	"strings"

	"flickr-embed/domain/model"

	"golang.org/x/net/html"
)

const (
	optionSeparator = "|"
	optionCutset    = " \t\n\r\x00\x0B"
)

// ParseOptions splits a <flickr> tag body into an EmbedRequest. The first
// token is the photo id, taken verbatim. Every later token is classified as
// type, location, size or caption, in that order; a category is filled at
// most once and anything left over is appended to the caption.
func ParseOptions(body string) model.EmbedRequest {
	tokens := strings.Split(body, optionSeparator)
	req := model.EmbedRequest{ID: tokens[0]}

	for _, raw := range tokens[1:] {
		token := strings.Trim(raw, optionCutset)
		key := strings.ToLower(html.EscapeString(token))

		switch {
		case req.Type == "" && model.IsValidType(key):
			req.Type = model.EmbedType(key)
		case req.Location == "" && model.IsValidLocation(key):
			req.Location = model.Location(key)
		case req.Size == "" && model.IsValidSize(key):
			req.Size = model.SizeCode(key)
		case req.Caption == "":
			req.Caption = token
		default:
			req.Caption += optionSeparator + token
		}
	}
	return req
}
