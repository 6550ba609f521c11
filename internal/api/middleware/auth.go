package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TokenVerifier decodes a bearer token into its subject.
type TokenVerifier interface {
	Verify(token string) (auth.Subject, error)
}

// PrincipalLookup loads the current record for a token subject.
type PrincipalLookup interface {
	FindByPublicID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Auth admits a request only when its bearer token verifies, the subject
// still exists and the subject's stored role equals the role in the token.
// A missing subject is reported as 404; every other rejection is 403.
func Auth(tokens TokenVerifier, lookup PrincipalLookup, log logrus.FieldLogger) func(http.Handler) http.Handler {
	log = log.WithField("op", "middleware.Auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("missing bearer token")
				respond.Error(w, http.StatusForbidden, "authentication required")
				return
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				log.WithError(err).Debug("token rejected")
				respond.Error(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			user, err := lookup.FindByPublicID(r.Context(), subject.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					respond.Error(w, http.StatusNotFound, "user not found")
					return
				}
				log.WithError(err).Error("failed to load token subject")
				respond.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if user.Role != subject.Role {
				log.WithField("subject", subject.ID).Info("token role no longer matches stored role")
				respond.Error(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := auth.WithPrincipal(r.Context(), auth.PrincipalFromUser(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
