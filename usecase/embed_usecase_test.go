package usecase_test

import (
	"context"
	"errors"
	"testing"

	"flickr-embed/domain/model"
	"flickr-embed/interfaces/markup"
	"flickr-embed/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var embedDefaults = model.EmbedDefaults{Type: model.EmbedTypeFrameless, Location: model.LocationRight, Size: model.SizeMedium}

func newEmbedUsecase(apiKey string, fetcher usecase.IMetadataFetcher) usecase.IEmbedUsecase {
	return usecase.NewEmbedUsecase(usecase.EmbedConfig{APIKey: apiKey, Defaults: embedDefaults}, fetcher, markup.NewImageLinkRenderer())
}

func TestEmbedUsecase_EndToEnd(t *testing.T) {
	flickr := new(MockFlickr)
	cache := new(MockPhotoCache)
	cache.On("Get", mock.Anything, "flickrapi:photo:123").Return(nil, nil)
	cache.On("Set", mock.Anything, "flickrapi:photo:123", mock.Anything, ttl).Return(nil)
	flickr.On("GetPhotoInfo", mock.Anything, "123").Return(&model.PhotoInfo{Title: "X", LinkURL: "http://example/123"}, nil)
	flickr.On("GetPhotoSizes", mock.Anything, "123").Return([]model.PhotoSize{{Label: "Medium", Width: 180, URL: "http://img/m.jpg"}}, nil)

	fetcher := usecase.NewPhotoMetadataFetcher(flickr, cache, usecase.FetcherConfig{Expiry: ttl})
	u := newEmbedUsecase("key", fetcher)

	out, err := u.Embed(context.Background(), "123|thumb|left|My caption", model.DirectionLTR)

	require.NoError(t, err)
	assert.Equal(t,
		`<div class="flickrapi"><div class="thumb tleft"><div class="thumbinner" style="width:182px;">`+
			`<a href="http://example/123" title="My caption"><img alt="My caption" src="http://img/m.jpg" class="thumbimage"/></a>`+
			`<div class="thumbcaption"><div class="magnify"><a href="http://example/123" title="Enlarge"></a></div>My caption</div>`+
			`</div></div></div>`,
		out)
	cache.AssertExpectations(t)
}

func TestEmbedUsecase_CaptionFallsBackToTitle(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "123").Return(&model.PhotoMetadata{
		Title:   "Remote",
		LinkURL: "http://example/123",
		Sizes:   []model.PhotoSize{{Label: "Medium", Width: 500, URL: "http://img/m.jpg"}},
	}, nil)

	out := newEmbedUsecase("key", fetcher).Render(context.Background(), "123", model.DirectionLTR)

	assert.Equal(t,
		`<div class="flickrapi"><div class="floatright"><a href="http://example/123" title="Remote"><img alt="Remote" src="http://img/m.jpg"/></a></div></div>`,
		out)
}

func TestEmbedUsecase_Errors(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		body   string
		setup  func(f *MockFetcher)
		kind   model.ErrorKind
		html   string
	}{
		{
			name:   "missing api key",
			apiKey: "",
			body:   "123",
			kind:   model.ErrorKindConfig,
			html:   `<strong class="error flickrapi-error">Flickr Error ( No API key ): You must set flickr.apiKey!</strong>`,
		},
		{
			name:   "missing id",
			apiKey: "key",
			body:   "",
			kind:   model.ErrorKindMissingID,
			html:   `<strong class="error flickrapi-error">Flickr Error ( No ID ): Enter at least a PhotoID</strong>`,
		},
		{
			name:   "invalid id",
			apiKey: "key",
			body:   "abc|thumb",
			kind:   model.ErrorKindInvalidID,
			html:   `<strong class="error flickrapi-error">Flickr Error ( Not a valid ID ): PhotoID not numeric</strong>`,
		},
		{
			name:   "not found",
			apiKey: "key",
			body:   "404",
			setup: func(f *MockFetcher) {
				f.On("Fetch", mock.Anything, "404").Return(nil, model.NewNotFoundError("404", nil))
			},
			kind: model.ErrorKindNotFound,
			html: `<strong class="error flickrapi-error">Flickr Error ( Photo not found ): PhotoID 404</strong>`,
		},
		{
			name:   "untyped fetch error",
			apiKey: "key",
			body:   "500",
			setup: func(f *MockFetcher) {
				f.On("Fetch", mock.Anything, "500").Return(nil, errors.New("boom"))
			},
			kind: model.ErrorKindNotFound,
			html: `<strong class="error flickrapi-error">Flickr Error ( Photo not found ): PhotoID 500</strong>`,
		},
		{
			name:   "size not available",
			apiKey: "key",
			body:   "123|b",
			setup: func(f *MockFetcher) {
				f.On("Fetch", mock.Anything, "123").Return(&model.PhotoMetadata{
					Sizes: []model.PhotoSize{{Label: "Medium", Width: 500, URL: "u1"}},
				}, nil)
			},
			kind: model.ErrorKindSizeNotAvailable,
			html: `<strong class="error flickrapi-error">Flickr Error ( Not a valid size ): Not found in this size (b)</strong>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockFetcher)
			if tt.setup != nil {
				tt.setup(fetcher)
			}
			u := newEmbedUsecase(tt.apiKey, fetcher)

			out, err := u.Embed(context.Background(), tt.body, model.DirectionLTR)
			assert.Empty(t, out)
			assert.True(t, model.IsKind(err, tt.kind), "got %v", err)

			assert.Equal(t, tt.html, u.Render(context.Background(), tt.body, model.DirectionLTR))
			if tt.setup == nil {
				fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
			}
		})
	}
}
