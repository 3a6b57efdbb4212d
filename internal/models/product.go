package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a product listed by a seller.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(120);index"`
	Description string    `json:"description" gorm:"type:varchar(1000);not null"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0"`
	Stock       int       `json:"stock" gorm:"not null;check:stock >= 0"`
	Category    string    `json:"category" gorm:"type:varchar(100);not null;index"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:text"`
	Image       string    `json:"image" gorm:"type:text"`
	SearchText  string    `json:"-" gorm:"type:text"`
	SellerID    uuid.UUID `json:"seller" gorm:"type:uuid;not null;index"`
	Seller      *User     `json:"sellerInfo,omitempty" gorm:"foreignKey:SellerID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RefreshSearchText lowercases name and description into the column searched by text queries.
func (p *Product) RefreshSearchText() {
	p.SearchText = strings.ToLower(p.Name + "\n" + p.Description)
}

// ProductFilter selects a page of the product catalogue.
type ProductFilter struct {
	Query    string
	Tag      string
	Category string
	Page     int
	Limit    int
}

// Offset is the number of rows skipped before the requested page.
func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes the page returned by a product listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
