package configuration

import (
	"fmt"
	"os"
	"strings"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"
)

const (
	defaultFlickrEndpoint = "https://api.flickr.com/services/rest/"
	locationAuto          = "auto"
)

func initFlickr(c *Config) {
	c.Flickr.APIKey = getConfigValue(c.Flickr.APIKey, "FLICKR_API_KEY", "")
	c.Flickr.APISecret = getConfigValue(c.Flickr.APISecret, "FLICKR_API_SECRET", "")
	c.Flickr.Endpoint = getConfigValue(c.Flickr.Endpoint, "FLICKR_ENDPOINT", defaultFlickrEndpoint)
	if c.Flickr.TimeoutSeconds <= 0 {
		c.Flickr.TimeoutSeconds = 10
	}
	if c.Flickr.APIKey == "" {
		logger.GetLogger().Warn("Flickr API key not set; every <flickr> tag will render a configuration error")
	}
}

func initEmbed(c *Config) {
	d := &c.Embed.Defaults
	d.Type = strings.ToLower(strings.TrimSpace(d.Type))
	if !model.IsValidType(d.Type) {
		if d.Type != "" {
			logger.GetLogger().WithField("type", d.Type).Warn("Unknown default embed type, using frameless")
		}
		d.Type = string(model.EmbedTypeFrameless)
	}
	// "auto" leaves the location unset so framed images follow the page direction.
	d.Location = strings.ToLower(strings.TrimSpace(d.Location))
	switch {
	case d.Location == locationAuto:
	case d.Location == "":
		d.Location = string(model.LocationRight)
	case !model.IsValidLocation(d.Location):
		logger.GetLogger().WithField("location", d.Location).Warn("Unknown default location, using right")
		d.Location = string(model.LocationRight)
	}
	d.Size = strings.TrimSpace(d.Size)
	if !model.IsValidSize(d.Size) {
		if d.Size != "" {
			logger.GetLogger().WithField("size", d.Size).Warn("Unknown default size, using medium")
		}
		d.Size = string(model.SizeMedium)
	}
	c.Embed.Direction = string(model.ParseDirection(getConfigValue(c.Embed.Direction, "EMBED_DIRECTION", "ltr")))
}

// EmbedDefaults returns the configured default option triple.
func (c *Config) EmbedDefaults() model.EmbedDefaults {
	return model.EmbedDefaults{
		Type:     model.EmbedType(c.Embed.Defaults.Type),
		Location: defaultLocation(c.Embed.Defaults.Location),
		Size:     model.SizeCode(c.Embed.Defaults.Size),
	}
}

// CacheExpiry returns the cache expiry policy. An absolute ExpiresAt wins
// over TTLSeconds and must lie in the future.
func (c *Config) CacheExpiry() (model.Expiry, error) {
	if c.Cache.ExpiresAt != "" {
		at, err := time.Parse(time.RFC3339, c.Cache.ExpiresAt)
		if err != nil {
			return model.Expiry{}, fmt.Errorf("parse cache.expiresAt: %w", err)
		}
		if !at.After(time.Now()) {
			return model.Expiry{}, fmt.Errorf("cache.expiresAt %s is not in the future", c.Cache.ExpiresAt)
		}
		return model.ExpireAt(at), nil
	}
	if c.Cache.TTLSeconds <= 0 {
		return model.Expiry{}, fmt.Errorf("cache.ttlSeconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	return model.ExpireIn(time.Duration(c.Cache.TTLSeconds) * time.Second), nil
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	// Skip placeholders like YOUR_API_KEY left in sample configs
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}

func defaultLocation(s string) model.Location {
	if s == locationAuto {
		return ""
	}
	return model.Location(s)
}
