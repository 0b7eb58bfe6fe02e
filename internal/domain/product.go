package domain

// Product is a single catalog item as returned by the product-listing endpoint.
// Records are read-only: nothing in this service mutates them.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Metal       string  `json:"metal"`
	Purity      string  `json:"purity,omitempty"`
	Weight      string  `json:"weight,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Categories are the shortcut categories offered by the storefront navigation, in display order
var Categories = []string{"Rings", "Necklaces", "Earrings", "Bracelets", "Pendants"}

// PlaceholderImage is substituted for products without an image
const PlaceholderImage = "/placeholder.svg"

// CatalogPath is the navigation root for category-scoped views
const CatalogPath = "/catalog"

// CatalogURL returns the category-scoped view for a category label
func CatalogURL(category string) string {
	if category == "" || category == AllFilter {
		return CatalogPath
	}
	return CatalogPath + "/" + category
}

// ProductCard is a product prepared for display in the catalog grid
type ProductCard struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Metal       string  `json:"metal"`
	Purity      string  `json:"purity,omitempty"`
	Weight      string  `json:"weight,omitempty"`
	Description string  `json:"description,omitempty"`
	CatalogURL  string  `json:"catalogUrl"`
}

// NewProductCard builds the display card for a product, substituting the placeholder image
func NewProductCard(p Product) ProductCard {
	image := p.Image
	if image == "" {
		image = PlaceholderImage
	}
	return ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Image:       image,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Metal:       p.Metal,
		Purity:      p.Purity,
		Weight:      p.Weight,
		Description: p.Description,
		CatalogURL:  CatalogURL(p.Category),
	}
}
