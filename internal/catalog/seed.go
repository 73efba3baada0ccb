package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"github.com/swiftbasket/swiftbasket-backend/pkg/money"
	"go.uber.org/multierr"
)

//go:embed seed/products.json
var seedJSON []byte

// seedProduct mirrors the seed file layout. Prices are display
// strings and go through money.Parse before anything is stored.
type seedProduct struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Brand            string   `json:"brand"`
	Weight           string   `json:"weight"`
	Price            string   `json:"price"`
	OldPrice         *string  `json:"old_price,omitempty"`
	DeliveryEstimate string   `json:"delivery_estimate"`
	Description      *string  `json:"description,omitempty"`
	BrandLogoURL     *string  `json:"brand_logo_url,omitempty"`
	Tags             []string `json:"tags"`
	Images           []string `json:"images"`
}

// ParseSeed decodes and validates the embedded seed file. Entries
// with malformed prices are rejected; errors for all bad entries are
// combined so a broken file reports every problem at once.
func ParseSeed() ([]models.Product, error) {
	return parseSeed(seedJSON)
}

func parseSeed(raw []byte) ([]models.Product, error) {
	var entries []seedProduct
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}

	var (
		products []models.Product
		errs     error
	)
	now := time.Now().UTC()
	for _, entry := range entries {
		product, err := entry.toModel(now)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed entry %q: %w", entry.Slug, err))
			continue
		}
		products = append(products, product)
	}
	if errs != nil {
		return nil, errs
	}
	return products, nil
}

func (e seedProduct) toModel(now time.Time) (models.Product, error) {
	if e.Slug == "" {
		return models.Product{}, fmt.Errorf("slug is required")
	}
	if e.Name == "" {
		return models.Product{}, fmt.Errorf("name is required")
	}

	price, err := money.Parse(e.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("price %q: %w", e.Price, err)
	}

	var compareAt *int64
	if e.OldPrice != nil {
		old, err := money.Parse(*e.OldPrice)
		if err != nil {
			return models.Product{}, fmt.Errorf("old price %q: %w", *e.OldPrice, err)
		}
		// equal prices are allowed and simply carry no savings
		if old < price {
			return models.Product{}, fmt.Errorf("old price %s is below price %s", old, price)
		}
		paise := old.Paise()
		compareAt = &paise
	}

	return models.Product{
		ID:                  uuid.New(),
		Slug:                e.Slug,
		Name:                e.Name,
		Brand:               e.Brand,
		Category:            e.Category,
		Weight:              e.Weight,
		PricePaise:          price.Paise(),
		CompareAtPricePaise: compareAt,
		DeliveryEstimate:    e.DeliveryEstimate,
		Description:         e.Description,
		BrandLogoURL:        e.BrandLogoURL,
		Tags:                pq.StringArray(e.Tags),
		Images:              pq.StringArray(e.Images),
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// SeedIfEmpty loads the embedded catalog when the products table has
// no rows. Existing catalogs are left untouched.
func SeedIfEmpty(ctx context.Context, repo *Repository, logg *logger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting products")
	}
	if count > 0 {
		return nil
	}

	products, err := ParseSeed()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parsing catalog seed")
	}
	if err := repo.UpsertBatch(ctx, products); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting catalog seed")
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("catalog seeded with %d products", len(products)))
	}
	return nil
}
