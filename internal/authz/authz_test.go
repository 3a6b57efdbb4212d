package authz_test

import (
	"testing"

	"marketplace/internal/apperror"
	"marketplace/internal/authz"
	"marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	seller := &models.User{ID: uuid.New(), Role: models.RoleSeller}
	customer := &models.User{ID: uuid.New(), Role: models.RoleCustomer}

	assert.NoError(t, authz.RequireRole(seller, models.RoleSeller))
	assert.NoError(t, authz.RequireRole(customer, models.RoleCustomer))

	err := authz.RequireRole(customer, models.RoleSeller)
	assert.True(t, apperror.Is(err, apperror.Forbidden))
	assert.Equal(t, "Access denied. Seller role required.", err.Error())

	err = authz.RequireRole(seller, models.RoleAdmin)
	assert.True(t, apperror.Is(err, apperror.Forbidden))

	assert.True(t, apperror.Is(authz.RequireRole(nil, models.RoleSeller), apperror.Unauthenticated))
}

func TestRequireOwnership(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleSeller}
	other := &models.User{ID: uuid.New(), Role: models.RoleSeller}

	assert.NoError(t, authz.RequireOwnership(owner, owner.ID, "update", "product"))

	// Same identifier parsed separately still matches.
	sameID := uuid.MustParse(owner.ID.String())
	assert.NoError(t, authz.RequireOwnership(owner, sameID, "update", "product"))

	err := authz.RequireOwnership(other, owner.ID, "delete", "product")
	assert.True(t, apperror.Is(err, apperror.Forbidden))
	assert.Equal(t, "Not authorized to delete this product", err.Error())

	assert.True(t, apperror.Is(authz.RequireOwnership(nil, owner.ID, "read", "order"), apperror.Unauthenticated))
}
