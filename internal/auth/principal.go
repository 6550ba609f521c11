package auth

import (
	"context"

	"github.com/dom/members-api/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	SubjectID uuid.UUID
	UserID    uint
	Role      domain.Role
	Name      string
	Email     string
}

// PrincipalFromUser builds a principal from the stored user record.
func PrincipalFromUser(u *domain.User) *Principal {
	return &Principal{
		SubjectID: u.UUID,
		UserID:    u.ID,
		Role:      u.Role,
		Name:      u.Name,
		Email:     u.Email,
	}
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
