package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ContextUID is the gin context key for the verified subject id.
const ContextUID = "uid"

// TokenVerifier is the slice of the identity provider's API the auth
// middleware needs. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuthMiddleware verifies the Authorization bearer token against the
// identity provider and attaches the decoded subject id to the context.
// Verdicts are cached in Redis keyed by a token fingerprint, so repeated
// requests with the same token skip re-verification for an hour.
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			uid, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && uid != "" {
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set(ContextUID, uid)
				c.Next()
				return
			}
			if err != nil && err != redis.Nil {
				logger.Warn("auth cache unavailable, verifying directly", zap.Error(err))
			}
		}

		token, err := verifier.VerifyIDToken(ctx, tokenString)
		if err != nil {
			logger.Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, token.UID, time.Hour).Err()
		}

		c.Set(ContextUID, token.UID)
		c.Next()
	}
}
