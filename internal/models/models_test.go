package models_test

import (
	"encoding/json"
	"testing"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 5, 3},
	}
	for _, tc := range cases {
		p := models.NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.pages, p.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestProductFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, models.ProductFilter{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 5, models.ProductFilter{Page: 2, Limit: 5}.Offset())
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	user := models.User{ID: uuid.New(), Email: "a@b.com", Username: "alice", PasswordHash: "$2a$10$secret", Role: models.RoleSeller}

	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "password")
}

func TestOrder_HasSeller(t *testing.T) {
	seller := uuid.New()
	order := models.Order{Items: []models.OrderItem{{SellerID: uuid.New()}, {SellerID: seller}}}

	assert.True(t, order.HasSeller(seller))
	assert.False(t, order.HasSeller(uuid.New()))
}
