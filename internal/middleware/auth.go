package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/tokenpkg"
	"github.com/o-lebedeva/tx-bank/pkg/web"
)

const (
	// AuthHeaderKey is the header carrying the access token.
	AuthHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization type.
	AuthTypeBearer = "bearer"
	// AuthPayloadKey is the gin context key holding the verified token payload.
	AuthPayloadKey = "authorization_payload"
)

// ErrAdminRequired indicates that the operation is restricted to admins.
var ErrAdminRequired = errors.New("admin role required")

// AuthMiddleware verifies the bearer token and stores its payload in the context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			err := errors.New("authorization header is not provided")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authType)
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// AdminMiddleware rejects requests whose token payload lacks the admin role.
// It must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(gctx *gin.Context) {
		payload := gctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)

		if payload.Role != domain.RoleAdmin {
			gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrAdminRequired))
			return
		}

		gctx.Next()
	}
}
