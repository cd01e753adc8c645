package utils

import (
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/golang-jwt/jwt"
	"github.com/spf13/viper"
)

const authTokenTTL = 30 * 24 * time.Hour

type AuthTokenWrapper struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	wrapper.ExpiresAt = time.Now().Add(authTokenTTL).Unix()
	wrapper.IssuedAt = time.Now().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	return token.SignedString([]byte(viper.GetString(constants.ViperJWTSecret)))
}

func ParseAuthToken(raw string) (*AuthTokenWrapper, error) {
	wrapper := new(AuthTokenWrapper)
	_, err := jwt.ParseWithClaims(raw, wrapper, func(_ *jwt.Token) (interface{}, error) {
		return []byte(viper.GetString(constants.ViperJWTSecret)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
