package middleware

import (
	"fmt"
	"strings"

	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/token"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const authKey = "auth"

type jwtClaims struct {
	Metadata token.Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

// VerifyBearer validates the Authorization header and stores the token
// metadata in the request locals.
func VerifyBearer(config *viper.Viper) fiber.Handler {
	secret := []byte(config.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewForbidden()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := new(jwtClaims)
		parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			errObj := httpError.NewForbidden()
			errObj.Message = "invalid or expired token"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(authKey, &token.Claim{
			Iss:      claims.Issuer,
			Metadata: claims.Metadata,
		})
		return ctx.Next()
	}
}

// VerifyAdmin must run after VerifyBearer.
func VerifyAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := GetUser(ctx)
		if auth == nil || auth.Metadata.Role != "admin" {
			errObj := httpError.NewForbidden()
			errObj.Message = "admin role required"
			return utils.ResponseError(errObj, ctx)
		}
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *token.Claim {
	claim, _ := ctx.Locals(authKey).(*token.Claim)
	return claim
}
