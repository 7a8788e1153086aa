package utils

import (
	"errors"
	"time"

	"flickr-embed/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

const tokenIssuer = "flickr-embed"

var ErrNoSecretKey = errors.New("secret key not configured")

// Now is the clock used for token timestamps.
var Now = func() time.Time {
	return time.Now().UTC()
}

// IssueToken returns an HS256 bearer token for subject that expires after
// ttl. It is what middleware.Auth accepts on the /api routes.
func IssueToken(subject string, ttl time.Duration, secretKey string) (string, error) {
	if secretKey == "" {
		return "", ErrNoSecretKey
	}
	issuedAt := Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: issuedAt.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"subject": subject, "error": err}).Error("Cannot sign token")
		return "", err
	}
	return signed, nil
}
