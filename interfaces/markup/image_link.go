package markup

import (
	"fmt"
	"strings"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	defaultThumbWidth = 180
	magnifyTitle      = "Enlarge"
)

// ImageLinkRenderer builds image link markup in the frameless, thumb and
// frame styles. All text and attribute values are escaped by html.Render.
type ImageLinkRenderer struct{}

func NewImageLinkRenderer() *ImageLinkRenderer {
	return &ImageLinkRenderer{}
}

// Render returns the markup for req using img, wrapped in a flickrapi div.
func (r *ImageLinkRenderer) Render(req model.EmbedRequest, img *model.ResolvedImage, dir model.TextDirection) string {
	align := string(req.Location)
	centered := req.Location == model.LocationCenter
	if centered {
		align = string(model.LocationNone)
	}

	var body *html.Node
	switch req.Type {
	case model.EmbedTypeThumb, model.EmbedTypeFrame:
		if align == "" {
			align = dir.AlignEnd()
		}
		body = thumbBox(req, img, align)
	default:
		body = imageLink(img, req.Caption, "")
		if align != "" {
			body = wrap(element(atom.Div, "class", "float"+align), body)
		}
	}
	if centered {
		body = wrap(element(atom.Div, "class", "center"), body)
	}

	return renderNode(wrap(element(atom.Div, "class", "flickrapi"), body))
}

// RenderError returns the inline error element shown in place of an image.
func (r *ImageLinkRenderer) RenderError(message string) string {
	strong := element(atom.Strong, "class", "error flickrapi-error")
	strong.AppendChild(text(message))
	return renderNode(strong)
}

func thumbBox(req model.EmbedRequest, img *model.ResolvedImage, align string) *html.Node {
	width := img.Width
	if width <= 0 {
		width = defaultThumbWidth
	}

	outer := element(atom.Div, "class", "thumb t"+align)
	inner := element(atom.Div, "class", "thumbinner", "style", fmt.Sprintf("width:%dpx;", width+2))
	outer.AppendChild(inner)
	inner.AppendChild(imageLink(img, req.Caption, "thumbimage"))

	caption := element(atom.Div, "class", "thumbcaption")
	if req.Type == model.EmbedTypeThumb {
		magnify := element(atom.Div, "class", "magnify")
		magnify.AppendChild(element(atom.A, "href", img.LinkURL, "title", magnifyTitle))
		caption.AppendChild(magnify)
	}
	caption.AppendChild(text(req.Caption))
	inner.AppendChild(caption)
	return outer
}

// imageLink is an <img>, inside an <a> to the photo page when there is one.
func imageLink(img *model.ResolvedImage, caption, class string) *html.Node {
	attrs := []string{"alt", caption, "src", img.URL}
	if class != "" {
		attrs = append(attrs, "class", class)
	}
	if img.LinkURL == "" {
		if caption != "" {
			attrs = append(attrs, "title", caption)
		}
		return element(atom.Img, attrs...)
	}

	linkAttrs := []string{"href", img.LinkURL}
	if caption != "" {
		linkAttrs = append(linkAttrs, "title", caption)
	}
	return wrap(element(atom.A, linkAttrs...), element(atom.Img, attrs...))
}

// element builds an element node from alternating attribute keys and values.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func wrap(parent, child *html.Node) *html.Node {
	parent.AppendChild(child)
	return parent
}

func renderNode(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to render markup")
		return ""
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}
