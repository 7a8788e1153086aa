package flickr

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/domain/repository"
	"flickr-embed/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

const (
	methodGetInfo  = "flickr.photos.getInfo"
	methodGetSizes = "flickr.photos.getSizes"

	// Flickr error code for an unknown or private photo.
	codePhotoNotFound = 1
)

// Config represents Flickr REST API configuration
type Config struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	Endpoint  string `json:"endpoint"`
	Timeout   time.Duration
}

// Client calls the Flickr REST API with JSON responses.
type Client struct {
	config     *Config
	httpClient *http.Client
}

type callParams struct {
	Method         string `url:"method"`
	APIKey         string `url:"api_key"`
	PhotoID        string `url:"photo_id"`
	Format         string `url:"format"`
	NoJSONCallback int    `url:"nojsoncallback"`
}

type stat struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type content struct {
	Content string `json:"_content"`
}

type infoResponse struct {
	stat
	Photo *struct {
		Title content `json:"title"`
		URLs  struct {
			URL []struct {
				Type    string `json:"type"`
				Content string `json:"_content"`
			} `json:"url"`
		} `json:"urls"`
	} `json:"photo"`
}

type sizesResponse struct {
	stat
	Sizes *struct {
		Size []struct {
			Label  string  `json:"label"`
			Width  flexInt `json:"width"`
			Height flexInt `json:"height"`
			Source string  `json:"source"`
		} `json:"size"`
	} `json:"sizes"`
}

// flexInt accepts both JSON numbers and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}

// NewFlickrClient creates a new Flickr API client. httpClient may be nil.
func NewFlickrClient(config *Config, httpClient *http.Client) repository.IFlickr {
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{config: config, httpClient: httpClient}
}

// GetPhotoInfo returns the title and photo page URL. A photo Flickr does not
// know returns nil, nil.
func (c *Client) GetPhotoInfo(ctx context.Context, photoID string) (*model.PhotoInfo, error) {
	var res infoResponse
	found, err := c.call(ctx, methodGetInfo, photoID, &res, &res.stat)
	if err != nil || !found || res.Photo == nil {
		return nil, err
	}

	info := &model.PhotoInfo{Title: res.Photo.Title.Content}
	if urls := res.Photo.URLs.URL; len(urls) > 0 {
		info.LinkURL = urls[0].Content
	}
	return info, nil
}

// GetPhotoSizes returns the available size variants in Flickr's order.
func (c *Client) GetPhotoSizes(ctx context.Context, photoID string) ([]model.PhotoSize, error) {
	var res sizesResponse
	found, err := c.call(ctx, methodGetSizes, photoID, &res, &res.stat)
	if err != nil || !found || res.Sizes == nil {
		return nil, err
	}

	sizes := make([]model.PhotoSize, 0, len(res.Sizes.Size))
	for _, s := range res.Sizes.Size {
		sizes = append(sizes, model.PhotoSize{
			Label:  s.Label,
			Width:  int(s.Width),
			Height: int(s.Height),
			URL:    s.Source,
		})
	}
	return sizes, nil
}

func (c *Client) call(ctx context.Context, method, photoID string, out interface{}, st *stat) (bool, error) {
	params, err := query.Values(callParams{
		Method:         method,
		APIKey:         c.config.APIKey,
		PhotoID:        photoID,
		Format:         "json",
		NoJSONCallback: 1,
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode %s params: %w", method, err)
	}
	if c.config.APISecret != "" {
		params.Set("api_sig", Sign(c.config.APISecret, params))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%s returned HTTP %d", method, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read %s response: %w", method, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if st.Stat != "ok" {
		if st.Code == codePhotoNotFound {
			logger.GetLogger().WithFields(map[string]interface{}{"method": method, "photo_id": photoID}).Debug("Flickr photo not found")
			return false, nil
		}
		return false, fmt.Errorf("%s failed: code %d: %s", method, st.Code, st.Message)
	}
	return true, nil
}

// Sign computes api_sig: the md5 of the secret followed by every parameter
// name and value sorted by name.
func Sign(secret string, params map[string][]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "api_sig" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(secret)
	for _, k := range keys {
		for _, v := range params[k] {
			b.WriteString(k)
			b.WriteString(v)
		}
	}
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
