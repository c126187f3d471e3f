package middleware

import (
	"fmt"
	"net/http"
	"strings"

	identity "anoa.com/bloodconnect/internal/modules/identity/service"
	"anoa.com/bloodconnect/pkg/apperror"
	"anoa.com/bloodconnect/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	resolver identity.Resolver
	secret   string
}

func NewAuthMiddleware(resolver identity.Resolver, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		secret:   secret,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Browsers cannot set headers on websocket upgrades.
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		if _, err := uuid.Parse(claims.Subject); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		c.Set(response.AccountIDKey, claims.Subject)
		c.Next()
	}
}

// RequireRole resolves the caller's identity and admits only the given roles.
// The resolved identity is stored in the context for handlers.
func (m *AuthMiddleware) RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := response.GetAccountID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		id := m.resolver.Resolve(c.Request.Context(), accountID)
		for _, role := range roles {
			if id.Role == role {
				c.Set(response.IdentityKey, id)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("%s access required", joinRoles(roles))})
	}
}

// GetIdentity returns the identity stored by RequireRole.
func GetIdentity(c *gin.Context) (identity.Identity, error) {
	raw, exists := c.Get(response.IdentityKey)
	if !exists {
		return identity.Identity{}, apperror.ErrUnauthorized
	}
	id, ok := raw.(identity.Identity)
	if !ok {
		return identity.Identity{}, apperror.ErrUnauthorized
	}
	return id, nil
}

// HospitalID returns the acting hospital of a request admitted by
// RequireRole(RoleHospital).
func HospitalID(c *gin.Context) (uuid.UUID, error) {
	id, err := GetIdentity(c)
	if err != nil {
		return uuid.Nil, err
	}
	if id.HospitalID == nil {
		return uuid.Nil, apperror.ErrForbidden
	}
	return *id.HospitalID, nil
}

// DonorID returns the donor profile of a request admitted by
// RequireRole(RoleDonor).
func DonorID(c *gin.Context) (uuid.UUID, error) {
	id, err := GetIdentity(c)
	if err != nil {
		return uuid.Nil, err
	}
	if id.ProfileID == nil {
		return uuid.Nil, apperror.ErrForbidden
	}
	return *id.ProfileID, nil
}

func joinRoles(roles []identity.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
