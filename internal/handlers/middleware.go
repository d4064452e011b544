package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// RequireUser extracts the authenticated user ID from the X-User-ID
// header. Authentication itself happens upstream; a missing or malformed
// header means the proxy is misconfigured and the request is rejected.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing user identity", "", nil)
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			respondWithError(w, http.StatusUnauthorized, "Invalid user identity", "Bad X-User-ID header", err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// UserFromContext retrieves the user ID placed by RequireUser. The
// second return value is false outside an authenticated request.
func UserFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserContextKey).(int64)
	return userID, ok
}
