package bundle

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Namespace is the metafield namespace every surface stores its configuration under.
const Namespace = "bundle_builder"

// Surface is a place in the storefront that offers bundle pricing.
// Each surface owns its own metafield and its own discount code prefix.
type Surface struct {
	Name         string `json:"name"`
	MetafieldKey string `json:"metafield_key"`
	Prefix       string `json:"prefix"`
}

var (
	// Cart is the cart-wide bundle.
	Cart = Surface{Name: "cart", MetafieldKey: "config", Prefix: "fubndl"}
	// ProductPage is the product-page bundle.
	ProductPage = Surface{Name: "product_page", MetafieldKey: "product_page", Prefix: "fuprbl"}
)

// Surfaces returns every known surface.
func Surfaces() []Surface {
	return []Surface{Cart, ProductPage}
}

// ParseSurface resolves a surface by name.
func ParseSurface(name string) (Surface, error) {
	s, ok := lo.Find(Surfaces(), func(s Surface) bool { return s.Name == name })
	if !ok {
		return Surface{}, errors.Newf("unknown bundle surface %q", name)
	}
	return s, nil
}
