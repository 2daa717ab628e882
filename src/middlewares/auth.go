package middlewares

import (
	"net/http"
	"strings"
	"time"

	"spenden/src/config"
	"spenden/src/db"
	"spenden/src/models"
	"spenden/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

func jwtKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// IssueAdminToken mints a dashboard session token for an allow-listed email.
func IssueAdminToken(email string) (string, error) {
	claims := &types.Claims{
		Email: email,
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// AdminAuthMiddleware guards the dashboard routes. A missing or invalid token
// is 401; a valid token whose email has no admin_users row is 403.
func AdminAuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
	if reqToken == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey(), nil
	})
	if err != nil {
		log.WithError(err).Debug("token error")
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn := db.GetDb()
	var admin models.AdminUser
	conn.Model(&models.AdminUser{}).Where(&models.AdminUser{Email: claims.Email}).Find(&admin)
	if admin.ID < 1 {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not an admin"})
		return
	}
	ctx.Set("admin_email", admin.Email)
}

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	ctx.Next()
}
