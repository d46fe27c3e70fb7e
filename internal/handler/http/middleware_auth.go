package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
)

// platformAuth is an HTTP middleware that authenticates the calling platform.
//
// It extracts the bearer token from the "Authorization" header and validates
// it with the configured sign key and issuer. On success the platform id
// (the token subject) is stored in the request context under
// [utils.PlatformIDCtxKey]; handlers use it in place of any platform id sent
// in the body.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header is not a bearer token ([ErrInvalidAuthorizationHeader]);
//   - the token is expired, signed with another key or issued by someone else.
func (h *Handler) platformAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.auth.TokenSignKey, h.auth.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing platform token")
			utils.WriteError(w, ErrInvalidPlatformToken.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.PlatformIDCtxKey, token.PlatformID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// platformID returns the authenticated platform of r. It is only empty when
// the route is not behind [Handler.platformAuth].
func platformID(r *http.Request) string {
	id, _ := utils.GetPlatformIDFromContext(r.Context())
	return id
}
