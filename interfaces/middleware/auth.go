package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"flickr-embed/domain/dto"
	"flickr-embed/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Auth accepts HS256 bearer tokens signed with secretKey and stores the
// token subject under "subject". An empty secretKey rejects every request.
func Auth(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}

		authorization := ctx.Request.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(authorization, "Bearer ")
		if secretKey == "" || authorization == "" || tokenString == authorization || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		claims, token, err := getClaim(tokenString, secretKey)
		if err != nil || !token.Valid {
			res.ResponseMessage = rejectReason(err)
			logger.GetLogger().WithField("reason", res.ResponseMessage).Debug("Rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		ctx.Set("subject", claims.Subject)
		ctx.Next()
	}
}

func rejectReason(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			// Token is either expired or not active yet
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}

func getClaim(tokenString, secretKey string) (*jwt.StandardClaims, *jwt.Token, error) {
	var claims jwt.StandardClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		},
	)
	return &claims, token, err
}
