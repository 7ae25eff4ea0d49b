package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the type of Minecraft content being sold.
type Kind string

const (
	KindSkin    Kind = "skin"
	KindMap     Kind = "map"
	KindMod     Kind = "mod"
	KindTexture Kind = "texture"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSkin, KindMap, KindMod, KindTexture:
		return true
	}
	return false
}

type Product struct {
	ID          uint
	Slug        string
	Name        string
	Description string
	Kind        Kind
	Price       decimal.Decimal
	SellerID    uint
	ImageURL    *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewProductInput struct {
	Name        string
	Description string
	Kind        Kind
	Price       string
	ImageURL    *string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *string
	ImageURL    *string
	Active      *bool
}

type ListFilter struct {
	Kind   *Kind
	Search *string
	Limit  int
	Page   int
}
