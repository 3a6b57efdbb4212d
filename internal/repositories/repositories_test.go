package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marketplace/internal/database/databasetest"
	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createSeller(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: "seller", PasswordHash: "hash", Role: models.RoleSeller}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(context.Background(), user))
	return user
}

func TestGORMUserRepository(t *testing.T) {
	db := databasetest.Open(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "a@b.com", Username: "alice", PasswordHash: "hash", Role: models.RoleCustomer}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	err = repo.Create(ctx, &models.User{Email: "a@b.com", Username: "other", PasswordHash: "hash", Role: models.RoleCustomer})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = repo.GetByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.UpdateRole(ctx, user.ID, models.RoleAdmin))
	byID, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, byID.Role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, uuid.New(), models.RoleAdmin), repositories.ErrNotFound)
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	db := databasetest.Open(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	seller := createSeller(t, db, "seller@shop.com")

	product := &models.Product{Name: "Pen", Description: "Blue pen", Price: 1.5, Stock: 10, Category: "office", SellerID: seller.ID}
	require.NoError(t, repo.Create(ctx, product))
	assert.Equal(t, []string{}, product.Tags)

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", fetched.Name)
	assert.Equal(t, 1.5, fetched.Price)
	require.NotNil(t, fetched.Seller)
	assert.Equal(t, seller.Email, fetched.Seller.Email)
	assert.Empty(t, fetched.Seller.PasswordHash)

	fetched.Stock = 0
	fetched.Tags = []string{"sale"}
	require.NoError(t, repo.Update(ctx, fetched))

	updated, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, []string{"sale"}, updated.Tags)

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), repositories.ErrNotFound)
	_, err = repo.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	missing := &models.Product{ID: uuid.New(), Name: "Ghost", Description: "x", Category: "x", SellerID: seller.ID}
	assert.ErrorIs(t, repo.Update(ctx, missing), repositories.ErrNotFound)
}

func TestGORMProductRepository_ListFilters(t *testing.T) {
	db := databasetest.Open(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	seller := createSeller(t, db, "seller@shop.com")

	base := time.Now().Add(-time.Hour)
	fixtures := []models.Product{
		{Name: "Blue Pen", Description: "Writes in blue", Category: "office", Tags: []string{"sale", "pens"}},
		{Name: "Notebook", Description: "A5 notebook with BLUE cover", Category: "office", Tags: []string{"presale"}},
		{Name: "Mug", Description: "100% ceramic", Category: "kitchen", Tags: []string{"sale"}},
	}
	for i := range fixtures {
		fixtures[i].SellerID = seller.ID
		fixtures[i].Price = 2
		fixtures[i].Stock = 1
		fixtures[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
	}

	list := func(f models.ProductFilter) ([]models.Product, int64) {
		f.Page, f.Limit = 1, 10
		products, total, err := repo.List(ctx, f)
		require.NoError(t, err)
		return products, total
	}

	products, total := list(models.ProductFilter{Query: "blue"})
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Notebook", products[0].Name, "newest first")
	assert.Equal(t, "Blue Pen", products[1].Name)

	products, total = list(models.ProductFilter{Tag: "sale"})
	assert.Equal(t, int64(2), total, "presale must not match the sale tag")
	for _, p := range products {
		assert.Contains(t, p.Tags, "sale")
	}

	_, total = list(models.ProductFilter{Category: "kitchen"})
	assert.Equal(t, int64(1), total)

	_, total = list(models.ProductFilter{Query: "%"})
	assert.Equal(t, int64(1), total, "LIKE wildcards in the query are literal")

	_, total = list(models.ProductFilter{Query: "blue", Category: "kitchen"})
	assert.Equal(t, int64(0), total)

	_, total = list(models.ProductFilter{Tag: "SALE"})
	assert.Equal(t, int64(0), total, "tags match exactly")

	_, total = list(models.ProductFilter{Tag: "pen"})
	assert.Equal(t, int64(0), total)
}

func TestGORMProductRepository_SearchFoldsUnicode(t *testing.T) {
	db := databasetest.Open(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	seller := createSeller(t, db, "seller@shop.com")

	product := &models.Product{Name: "CAFÉ CRÈME", Description: "Dark roast", Price: 4, Stock: 3, Category: "drinks", SellerID: seller.ID}
	require.NoError(t, repo.Create(ctx, product))

	filter := models.ProductFilter{Query: "café", Page: 1, Limit: 10}
	products, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "CAFÉ CRÈME", products[0].Name)

	product.Name = "Thé Vert"
	product.Description = "GRÜNER Tee"
	require.NoError(t, repo.Update(ctx, product))

	_, total, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total, "search text follows the renamed product")

	_, total, err = repo.List(ctx, models.ProductFilter{Query: "grüner", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGORMProductRepository_Pagination(t *testing.T) {
	db := databasetest.Open(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	seller := createSeller(t, db, "seller@shop.com")

	for i := 0; i < 12; i++ {
		p := &models.Product{Name: fmt.Sprintf("Item %d", i), Description: "d", Category: "c", Price: 1, Stock: 1, SellerID: seller.ID}
		require.NoError(t, repo.Create(ctx, p))
	}

	for page, want := range map[int]int{1: 5, 2: 5, 3: 2, 4: 0} {
		products, total, err := repo.List(ctx, models.ProductFilter{Page: page, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		assert.Len(t, products, want, "page %d", page)
	}

	mine, err := repo.ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 12)

	none, err := repo.ListBySeller(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMOrderRepository(t *testing.T) {
	db := databasetest.Open(t)
	products := repositories.NewGORMProductRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()
	seller := createSeller(t, db, "seller@shop.com")

	pen := &models.Product{Name: "Pen", Description: "d", Category: "office", Price: 1.5, Stock: 3, SellerID: seller.ID}
	require.NoError(t, products.Create(ctx, pen))

	clientID := uuid.New()
	order := &models.Order{
		ClientID: clientID,
		Status:   models.DefaultOrderStatus,
		Items:    []models.OrderItem{{ProductID: pen.ID, SellerID: seller.ID, Quantity: 2, PriceAtOrder: 1.5}},
	}
	require.NoError(t, orders.Create(ctx, order))

	stored, err := products.GetByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock)

	tooMany := &models.Order{
		ClientID: clientID,
		Status:   models.DefaultOrderStatus,
		Items:    []models.OrderItem{{ProductID: pen.ID, SellerID: seller.ID, Quantity: 2, PriceAtOrder: 1.5}},
	}
	assert.ErrorIs(t, orders.Create(ctx, tooMany), repositories.ErrInsufficientStock)
	stored, err = products.GetByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock, "failed order leaves stock untouched")

	fetched, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, pen.ID, fetched.Items[0].ProductID)

	mine, err := orders.GetByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := orders.GetByClient(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, "shipped"))
	fetched, err = orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", fetched.Status)
	assert.ErrorIs(t, orders.UpdateStatus(ctx, uuid.New(), "shipped"), repositories.ErrNotFound)

	all, err := orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, orders.Delete(ctx, order.ID))
	assert.ErrorIs(t, orders.Delete(ctx, order.ID), repositories.ErrNotFound)

	var items int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestGORMDeliveryRepository(t *testing.T) {
	db := databasetest.Open(t)
	repo := repositories.NewGORMDeliveryRepository(db)
	ctx := context.Background()

	orderID, sellerID := uuid.New(), uuid.New()
	delivery := &models.Delivery{OrderID: orderID, SellerID: sellerID, Pending: true,
		Items: []models.DeliveryItem{{ProductID: uuid.New(), Quantity: 1}}}
	require.NoError(t, repo.Create(ctx, delivery))

	dup := &models.Delivery{OrderID: orderID, SellerID: sellerID, Pending: true}
	assert.ErrorIs(t, repo.Create(ctx, dup), repositories.ErrDuplicate)

	list, err := repo.ListBySeller(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Pending)
	assert.Len(t, list[0].Items, 1)

	require.NoError(t, repo.MarkShipped(ctx, delivery.ID))
	fetched, err := repo.GetByID(ctx, delivery.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Pending)

	require.NoError(t, repo.DeleteByOrder(ctx, orderID))
	_, err = repo.GetByID(ctx, delivery.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
