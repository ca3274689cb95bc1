package helper

import (
	"fmt"
	"time"

	"event_manager/config"
	"event_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func jwtSecret() []byte {
	return []byte(config.ConfigOr("JWT_SECRET", "dev-secret"))
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  claim.UserId,
		"email":   claim.Email,
		"isAdmin": claim.IsAdmin,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

// GetClaimsFromToken pulls the verified claims the Protected middleware
// stored in locals. The zero claim means guest.
func GetClaimsFromToken(c *fiber.Ctx) model.TokenClaim {
	u := c.Locals("user")
	if u == nil {
		return model.TokenClaim{}
	}
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}
	}

	claim := model.TokenClaim{}
	if id, ok := claims["userId"].(float64); ok {
		claim.UserId = uint(id)
	}
	if email, ok := claims["email"].(string); ok {
		claim.Email = email
	}
	if isAdmin, ok := claims["isAdmin"].(bool); ok {
		claim.IsAdmin = isAdmin
	}
	return claim
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
