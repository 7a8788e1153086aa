package tag_test

import (
	"context"
	"errors"
	"testing"

	"flickr-embed/domain/model"
	"flickr-embed/interfaces/tag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(_ context.Context, inv tag.Invocation) string {
	return "[" + inv.Body + ":" + string(inv.Direction) + ":" + inv.Attributes["class"] + "]"
}

func TestRegistry_Register(t *testing.T) {
	r := tag.NewRegistry()

	require.NoError(t, r.Register("Flickr", echo))
	assert.True(t, errors.Is(r.Register("flickr", echo), tag.ErrDuplicateTag))
	assert.True(t, errors.Is(r.Register("", echo), tag.ErrInvalidTag))
	assert.True(t, errors.Is(r.Register("bad name", echo), tag.ErrInvalidTag))
	assert.True(t, errors.Is(r.Register("nohandler", nil), tag.ErrInvalidTag))
	assert.Equal(t, []string{"flickr"}, r.Names())
}

func TestRegistry_Render(t *testing.T) {
	r := tag.NewRegistry()
	require.NoError(t, r.Register("flickr", echo))

	out, err := r.Render(context.Background(), "FLICKR", tag.Invocation{Body: "123", Direction: model.DirectionRTL})
	require.NoError(t, err)
	assert.Equal(t, "[123:rtl:]", out)

	_, err = r.Render(context.Background(), "gallery", tag.Invocation{})
	assert.True(t, errors.Is(err, tag.ErrUnknownTag))
}

func TestRegistry_Expand(t *testing.T) {
	r := tag.NewRegistry()
	assert.Equal(t, "<flickr>1</flickr>", r.Expand(context.Background(), "<flickr>1</flickr>", model.DirectionLTR))

	require.NoError(t, r.Register("flickr", echo))

	content := "Intro <flickr>1|thumb</flickr> middle <FLICKR class=\"wide\">2\n|left</FLICKR> <gallery>x</gallery> <flickr>3</other>"
	got := r.Expand(context.Background(), content, model.DirectionLTR)

	assert.Equal(t, "Intro [1|thumb:ltr:] middle [2\n|left:ltr:wide] <gallery>x</gallery> <flickr>3</other>", got)
}

func TestParseAttributes(t *testing.T) {
	got := tag.ParseAttributes(` Class="a b" id='x' width=200 title="Tom &amp; Jerry"`)
	assert.Equal(t, map[string]string{
		"class": "a b",
		"id":    "x",
		"width": "200",
		"title": "Tom & Jerry",
	}, got)
}
