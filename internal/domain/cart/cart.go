package cart

import (
	"time"

	"github.com/mercatodev/storefront/internal/domain/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is the single per-user cart document. Items are embedded; each
// distinct product appears at most once.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Items     []Item             `bson:"items"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type Item struct {
	Product  primitive.ObjectID `bson:"product"`
	Quantity int                `bson:"quantity"`
}

// ItemView is a line item with its product reference resolved.
type ItemView struct {
	Product  product.View `json:"product"`
	Quantity int          `json:"quantity"`
}

type View struct {
	Items      []ItemView `json:"items"`
	TotalItems int        `json:"totalItems"`
}

// Resolve joins the cart's items against the given products and sums the
// quantities. Items whose product no longer exists are skipped from the
// item list but the quantity sum still reflects the stored cart.
func (c Cart) Resolve(products map[primitive.ObjectID]product.Product) View {
	items := make([]ItemView, 0, len(c.Items))
	total := 0

	for _, it := range c.Items {
		total += it.Quantity

		p, ok := products[it.Product]
		if !ok {
			continue
		}

		items = append(items, ItemView{
			Product:  p.View(),
			Quantity: it.Quantity,
		})
	}

	return View{
		Items:      items,
		TotalItems: total,
	}
}
