package flickr_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/clients/flickr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoJSON = `{"photo":{"id":"123","title":{"_content":"Harbour at dusk"},
"urls":{"url":[{"type":"photopage","_content":"https://www.flickr.com/photos/someone/123/"}]}},"stat":"ok"}`

const sizesJSON = `{"sizes":{"canblog":0,"size":[
{"label":"Square","width":75,"height":75,"source":"https://live.staticflickr.com/1/123_s.jpg"},
{"label":"Medium","width":"500","height":"333","source":"https://live.staticflickr.com/1/123.jpg"}]},"stat":"ok"}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetPhotoInfo(t *testing.T) {
	var got url.Values
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(infoJSON))
	})

	c := flickr.NewFlickrClient(&flickr.Config{APIKey: "k", Endpoint: srv.URL}, nil)
	info, err := c.GetPhotoInfo(context.Background(), "123")

	require.NoError(t, err)
	assert.Equal(t, &model.PhotoInfo{Title: "Harbour at dusk", LinkURL: "https://www.flickr.com/photos/someone/123/"}, info)
	assert.Equal(t, "flickr.photos.getInfo", got.Get("method"))
	assert.Equal(t, "k", got.Get("api_key"))
	assert.Equal(t, "123", got.Get("photo_id"))
	assert.Equal(t, "json", got.Get("format"))
	assert.Equal(t, "1", got.Get("nojsoncallback"))
	assert.Empty(t, got.Get("api_sig"))
}

func TestClient_GetPhotoSizes(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "flickr.photos.getSizes", r.URL.Query().Get("method"))
		_, _ = w.Write([]byte(sizesJSON))
	})

	c := flickr.NewFlickrClient(&flickr.Config{APIKey: "k", Endpoint: srv.URL}, nil)
	sizes, err := c.GetPhotoSizes(context.Background(), "123")

	require.NoError(t, err)
	assert.Equal(t, []model.PhotoSize{
		{Label: "Square", Width: 75, Height: 75, URL: "https://live.staticflickr.com/1/123_s.jpg"},
		{Label: "Medium", Width: 500, Height: 333, URL: "https://live.staticflickr.com/1/123.jpg"},
	}, sizes)
}

func TestClient_PhotoNotFound(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"stat":"fail","code":1,"message":"Photo \"9\" not found (invalid ID)"}`))
	})

	c := flickr.NewFlickrClient(&flickr.Config{APIKey: "k", Endpoint: srv.URL}, nil)

	info, err := c.GetPhotoInfo(context.Background(), "9")
	assert.NoError(t, err)
	assert.Nil(t, info)

	sizes, err := c.GetPhotoSizes(context.Background(), "9")
	assert.NoError(t, err)
	assert.Nil(t, sizes)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "invalid key", status: http.StatusOK, body: `{"stat":"fail","code":100,"message":"Invalid API Key"}`, wantErr: "Invalid API Key"},
		{name: "http error", status: http.StatusBadGateway, body: "", wantErr: "HTTP 502"},
		{name: "bad json", status: http.StatusOK, body: "jsonFlickrApi({})", wantErr: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			c := flickr.NewFlickrClient(&flickr.Config{APIKey: "k", Endpoint: srv.URL}, nil)
			_, err := c.GetPhotoInfo(context.Background(), "1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_SignsWithSecret(t *testing.T) {
	var got url.Values
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(infoJSON))
	})

	c := flickr.NewFlickrClient(&flickr.Config{APIKey: "k", APISecret: "s3cret", Endpoint: srv.URL}, nil)
	_, err := c.GetPhotoInfo(context.Background(), "123")
	require.NoError(t, err)

	sig := got.Get("api_sig")
	assert.Len(t, sig, 32)
	assert.Equal(t, flickr.Sign("s3cret", got), sig)
}

func TestSign(t *testing.T) {
	// md5("secret" + "api_key" + "k" + "method" + "m"); api_sig itself is excluded
	want := "2e4656d0effb23208493e587708912a4"
	assert.Equal(t, want, flickr.Sign("secret", map[string][]string{"method": {"m"}, "api_key": {"k"}}))
	assert.Equal(t, want, flickr.Sign("secret", map[string][]string{"api_key": {"k"}, "method": {"m"}, "api_sig": {"ignored"}}))
}
