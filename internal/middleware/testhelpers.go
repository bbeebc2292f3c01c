package middleware

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/o-lebedeva/tx-bank/pkg/tokenpkg"
)

// AddAuthorization creates a token and sets the authorization header on the request.
func AddAuthorization(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker,
	authType, username, role string, duration time.Duration,
) {
	t.Helper()

	token, _, err := tokenMaker.CreateToken(username, role, duration)
	if err != nil {
		t.Fatalf("tokenMaker.CreateToken(%v, %v, %v) failed: %v", username, role, duration, err)
	}

	request.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))
}
