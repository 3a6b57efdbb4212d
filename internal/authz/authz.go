// Package authz holds the authorization gates. Each gate is a pure check of
// the authenticated user against a role or a resource owner.
package authz

import (
	"fmt"

	"marketplace/internal/apperror"
	"marketplace/internal/models"

	"github.com/google/uuid"
)

var roleNames = map[models.Role]string{
	models.RoleCustomer: "Customer",
	models.RoleSeller:   "Seller",
	models.RoleAdmin:    "Admin",
}

// RequireRole fails with Forbidden unless user has exactly role.
func RequireRole(user *models.User, role models.Role) error {
	if user == nil {
		return apperror.NewUnauthenticated()
	}
	if user.Role != role {
		name, ok := roleNames[role]
		if !ok {
			name = string(role)
		}
		return apperror.NewForbidden(fmt.Sprintf("Access denied. %s role required.", name))
	}
	return nil
}

// RequireOwnership fails with Forbidden unless user is ownerID. action and
// resource only shape the message, e.g. "update" and "product".
func RequireOwnership(user *models.User, ownerID uuid.UUID, action, resource string) error {
	if user == nil {
		return apperror.NewUnauthenticated()
	}
	if user.ID != ownerID {
		return apperror.NewForbidden(fmt.Sprintf("Not authorized to %s this %s", action, resource))
	}
	return nil
}
