package auth

import (
	"fmt"

	"github.com/dom/members-api/internal/domain"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	// ResourceUser is any account other than the caller's own, and role
	// assignments on any account.
	ResourceUser    Resource = "user"
	ResourceProfile Resource = "profile"
	ResourceModule  Resource = "module"
	ResourceLesson  Resource = "lesson"
	ResourceBanner  Resource = "banner"
	ResourceWatched Resource = "watched_lesson"
)

type rule struct {
	anyone bool
	admin  bool
}

var (
	adminOnly = rule{admin: true}
	everyone  = rule{anyone: true}
	nobody    = rule{}
)

var policy = map[Resource]map[Action]rule{
	ResourceUser: {
		ActionCreate: adminOnly,
		ActionRead:   adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceProfile: {
		ActionCreate: nobody,
		ActionRead:   everyone,
		ActionUpdate: everyone,
		ActionDelete: nobody,
	},
	ResourceModule: {
		ActionCreate: adminOnly,
		ActionRead:   everyone,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceLesson: {
		ActionCreate: adminOnly,
		ActionRead:   everyone,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceBanner: {
		ActionCreate: adminOnly,
		ActionRead:   everyone,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceWatched: {
		ActionCreate: everyone,
		ActionRead:   everyone,
		ActionUpdate: nobody,
		ActionDelete: nobody,
	},
}

// CanPerform returns nil when the principal may perform action on resource,
// and an error wrapping domain.ErrForbidden otherwise. Unknown pairs are denied.
func CanPerform(p *Principal, action Action, resource Resource) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}

	r := policy[resource][action]
	if r.anyone || (r.admin && p.Role.IsAdmin()) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot %s %s", domain.ErrForbidden, p.Role, action, resource)
}
