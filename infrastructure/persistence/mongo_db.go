package persistence

import (
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb creates a MongoDB client; the caller pings it. authSource is
// the database credentials are checked against and defaults to admin.
func NewMongoDb(host, port, user, password, authSource string) (*mongo.Client, error) {
	u := &url.URL{Scheme: "mongodb", Host: fmt.Sprintf("%s:%s", host, port)}
	if user != "" {
		u.User = url.UserPassword(user, password)
		q := url.Values{}
		if authSource == "" {
			authSource = "admin"
		}
		q.Set("authSource", authSource)
		u.RawQuery = q.Encode()
	}

	opts := options.Client().
		ApplyURI(u.String()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetAppName("flickr-embed")
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", u.Host, err)
	}
	return client, nil
}
