package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"busbackend/internal/domain"
	"busbackend/internal/repositories"
)

const actorKey = "actor"

// AuthRequired validates the Bearer token and loads the account behind it,
// so a block takes effect on the next request even for live tokens. The
// resulting Actor is placed on the context for handlers to pass into
// services explicitly.
func AuthRequired(secret []byte, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), domain.ID(userID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "akun tidak ditemukan"})
			return
		}
		if user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "akun diblokir"})
			return
		}

		c.Set(actorKey, domain.Actor{
			UserID:      user.ID,
			Username:    user.Username,
			Role:        user.Role,
			CounterName: user.CounterName,
		})
		c.Next()
	}
}

// GetActor returns the authenticated actor set by AuthRequired.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// RequireRoles hanya mengizinkan request dengan role yang terdapat di
// allowedRoles. Diasumsikan AuthRequired sudah set actor pada context.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: actor tidak ditemukan pada context",
			})
			return
		}
		if _, ok := allowed[strings.ToLower(actor.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden: role tidak diizinkan",
			})
			return
		}
		c.Next()
	}
}
