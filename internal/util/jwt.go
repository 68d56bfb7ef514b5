package util

import (
	"errors"
	"time"

	"github.com/VlKazmin/api-final-yatube/config"

	"github.com/dgrijalva/jwt-go"
)

func GenerateToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func ValidateToken(tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("无效的用户ID")
		}
		return int(userID), nil
	}

	return 0, errors.New("无效的令牌")
}

func RefreshToken(tokenString string) (string, error) {
	userID, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return GenerateToken(userID)
}
