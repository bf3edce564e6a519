package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Discount    float64            `bson:"discount" json:"discount"`
	Stock       int                `bson:"stock" json:"stock"`
	Category    string             `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateRequest carries the POST body. Price is a pointer so "missing"
// and "zero" stay distinguishable.
type CreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Discount    float64  `json:"discount" binding:"gte=0,lte=100"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Category    string   `json:"category"`
}

// UpdateRequest is a partial update: only non-nil fields are applied.
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Discount    *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
}

// DiscountedPrice derives the effective price from the stored discount
// percentage. Computed on read, never persisted.
func (p Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// View is the response shape: the product plus its derived price.
type View struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	Discount        float64   `json:"discount"`
	Stock           int       `json:"stock"`
	Category        string    `json:"category"`
	DiscountedPrice float64   `json:"discountedPrice"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (p Product) View() View {
	return View{
		ID:              p.ID.Hex(),
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Discount:        p.Discount,
		Stock:           p.Stock,
		Category:        p.Category,
		DiscountedPrice: p.DiscountedPrice(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
