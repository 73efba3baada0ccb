package catalog

import (
	"fmt"

	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
)

// ProductDTO is the catalog read model. Display prices are formatted
// from the stored paise values and the discount percentage is derived,
// never stored.
type ProductDTO struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Brand            string   `json:"brand"`
	Category         string   `json:"category"`
	Weight           string   `json:"weight"`
	Price            string   `json:"price"`
	PricePaise       int64    `json:"price_paise"`
	OldPrice         *string  `json:"old_price,omitempty"`
	OldPricePaise    *int64   `json:"old_price_paise,omitempty"`
	Discount         *string  `json:"discount,omitempty"`
	DeliveryEstimate string   `json:"delivery_estimate"`
	Description      *string  `json:"description,omitempty"`
	BrandLogoURL     *string  `json:"brand_logo_url,omitempty"`
	Tags             []string `json:"tags"`
	Images           []string `json:"images"`
}

// discountLabel renders the strike-through discount as a whole
// percentage, empty when the gap rounds below one percent.
func discountLabel(pricePaise, oldPricePaise int64) string {
	if oldPricePaise <= 0 || oldPricePaise <= pricePaise {
		return ""
	}
	percent := (float64(oldPricePaise-pricePaise) / float64(oldPricePaise)) * 100
	rounded := int(percent + 0.5)
	if rounded < 1 {
		return ""
	}
	return fmt.Sprintf("%d%% OFF", rounded)
}

func toDTO(p models.Product) ProductDTO {
	dto := ProductDTO{
		Slug:             p.Slug,
		Name:             p.Name,
		Brand:            p.Brand,
		Category:         p.Category,
		Weight:           p.Weight,
		Price:            money.FromPaise(p.PricePaise).String(),
		PricePaise:       p.PricePaise,
		DeliveryEstimate: p.DeliveryEstimate,
		Description:      p.Description,
		BrandLogoURL:     p.BrandLogoURL,
		Tags:             p.Tags,
		Images:           p.Images,
	}

	if p.CompareAtPricePaise != nil && *p.CompareAtPricePaise > p.PricePaise {
		old := money.FromPaise(*p.CompareAtPricePaise).String()
		dto.OldPrice = &old
		dto.OldPricePaise = p.CompareAtPricePaise
		if label := discountLabel(p.PricePaise, *p.CompareAtPricePaise); label != "" {
			dto.Discount = &label
		}
	}

	return dto
}

func toDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}
	return out
}
