package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/internal/interfaces/http/response"
	"auto-concierge.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AdminKeyHeader carries the static admin API key
	AdminKeyHeader = "X-Admin-Key"

	// DealerIDKey is the context key for the authenticated dealer id
	DealerIDKey = "dealerId"
	// RoleKey is the context key for the token role
	RoleKey = "role"
	// UsernameKey is the context key for the admin username
	UsernameKey = "username"
	// DealerKey is the context key for the loaded dealer profile
	DealerKey = "dealer"
)

// RequireAuth validates the bearer token and stores its claims in context
func RequireAuth(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, jwtService)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set(RoleKey, claims.Role)
		c.Set(DealerIDKey, claims.DealerID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// RequireDealer rejects tokens that do not carry the dealer role
func RequireDealer() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		if role != jwt.RoleDealer {
			response.AbortError(c, domainerrors.Forbidden("dealer access required"))
			return
		}
		dealerID, _ := GetDealerID(c)
		if dealerID == "" {
			response.AbortError(c, domainerrors.Unauthorized("token carries no dealer"))
			return
		}
		c.Next()
	}
}

// AdminAuth accepts either the static X-Admin-Key header or a bearer token
// with the admin role
func AdminAuth(jwtService *jwt.JWTService, adminAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(AdminKeyHeader); key != "" {
			if adminAPIKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(adminAPIKey)) == 1 {
				c.Set(RoleKey, jwt.RoleAdmin)
				c.Next()
				return
			}
			response.AbortError(c, domainerrors.Unauthorized("invalid admin key"))
			return
		}

		claims, err := bearerClaims(c, jwtService)
		if err != nil {
			response.AbortError(c, err)
			return
		}
		if claims.Role != jwt.RoleAdmin {
			response.AbortError(c, domainerrors.Forbidden("admin access required"))
			return
		}

		c.Set(RoleKey, claims.Role)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// RequireActiveDealer loads the authenticated dealer's profile and blocks
// paused dealers (403) and inactive subscriptions (402). The loaded profile
// is stored in context for the handlers.
func RequireActiveDealer(dealerRepo repositories.DealerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		dealerID, ok := GetDealerID(c)
		if !ok || dealerID == "" {
			response.AbortError(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		dealer, err := dealerRepo.GetByID(c.Request.Context(), dealerID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.AbortError(c, domainerrors.Unauthorized("dealer no longer exists"))
				return
			}
			response.AbortError(c, err)
			return
		}

		if dealer.Status == entities.DealerStatusPaused {
			response.AbortError(c, domainerrors.Forbidden("account is paused"))
			return
		}
		if !dealer.HasActiveSubscription() {
			response.AbortError(c, domainerrors.PaymentRequired("subscription is not active"))
			return
		}

		c.Set(DealerKey, dealer)
		c.Next()
	}
}

// GetDealerID gets the authenticated dealer id from context
func GetDealerID(c *gin.Context) (string, bool) {
	dealerID, exists := c.Get(DealerIDKey)
	if !exists {
		return "", false
	}
	id, ok := dealerID.(string)
	return id, ok
}

// GetDealer gets the loaded dealer profile from context
func GetDealer(c *gin.Context) (*entities.Dealer, bool) {
	v, exists := c.Get(DealerKey)
	if !exists {
		return nil, false
	}
	dealer, ok := v.(*entities.Dealer)
	return dealer, ok
}

func bearerClaims(c *gin.Context, jwtService *jwt.JWTService) (*jwt.Claims, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return nil, domainerrors.Unauthorized("authorization header is required")
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>")
	}

	claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.Unauthorized("token has expired")
		}
		return nil, domainerrors.Unauthorized("invalid token")
	}
	return claims, nil
}
