package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedVersion is the catalog version the embedded seed corresponds to.
// The remote store starts at this version when it is seeded; every later
// catalog change increments the counter by one.
const SeedVersion uint64 = 1

// SeedCatalog is the single canonical source of default product data.
// Category membership checks are derived from this list and nowhere else.
func SeedCatalog() []Product {
	now := time.Unix(1735689600, 0).UTC() // 2025-01-01, stable seed timestamp

	price := func(s string) decimal.Decimal {
		return decimal.RequireFromString(s)
	}

	return []Product{
		{
			ProductID:     "prd-1001",
			Name:          "Aurora Wireless Headphones",
			Description:   "Over-ear wireless headphones with active noise cancelling and 30h battery life.",
			Price:         price("129.99"),
			OriginalPrice: price("179.99"),
			Images:        []string{"seed/aurora-headphones.jpg"},
			Category:      "electronics",
			Featured:      true,
			InStock:       true,
			StockQuantity: 42,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-1002",
			Name:          "Pulse Smart Watch",
			Description:   "Fitness tracking watch with heart-rate monitor and week-long battery.",
			Price:         price("89.50"),
			Images:        []string{"seed/pulse-watch.jpg"},
			Category:      "electronics",
			InStock:       true,
			StockQuantity: 65,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-1003",
			Name:          "Nimbus Bluetooth Speaker",
			Description:   "Portable speaker, IPX7 waterproof, 12h playback.",
			Price:         price("49.90"),
			Images:        []string{"seed/nimbus-speaker.jpg"},
			Category:      "electronics",
			InStock:       true,
			StockQuantity: 120,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-2001",
			Name:          "Drift Organic Cotton Tee",
			Description:   "Relaxed-fit tee in heavyweight organic cotton.",
			Price:         price("24.00"),
			Images:        []string{"seed/drift-tee.jpg"},
			Category:      "apparel",
			InStock:       true,
			StockQuantity: 200,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-2002",
			Name:          "Summit Fleece Jacket",
			Description:   "Midweight recycled fleece with zip pockets.",
			Price:         price("68.00"),
			OriginalPrice: price("85.00"),
			Images:        []string{"seed/summit-fleece.jpg"},
			Category:      "apparel",
			Featured:      true,
			InStock:       true,
			StockQuantity: 80,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-2003",
			Name:          "Harbor Canvas Cap",
			Description:   "Six-panel cap with adjustable strap.",
			Price:         price("19.50"),
			Images:        []string{"seed/harbor-cap.jpg"},
			Category:      "apparel",
			InStock:       true,
			StockQuantity: 150,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-3001",
			Name:          "Ember Ceramic Mug Set",
			Description:   "Set of four stoneware mugs, dishwasher safe.",
			Price:         price("32.00"),
			Images:        []string{"seed/ember-mugs.jpg"},
			Category:      "home",
			InStock:       true,
			StockQuantity: 90,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-3002",
			Name:          "Willow Linen Throw",
			Description:   "Stonewashed linen throw blanket, 130x170cm.",
			Price:         price("54.00"),
			Images:        []string{"seed/willow-throw.jpg"},
			Category:      "home",
			Featured:      true,
			InStock:       true,
			StockQuantity: 40,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-3003",
			Name:          "Slate Oak Cutting Board",
			Description:   "End-grain oak board with juice groove.",
			Price:         price("45.00"),
			Images:        []string{"seed/slate-board.jpg"},
			Category:      "home",
			InStock:       true,
			StockQuantity: 55,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-4001",
			Name:          "Voyager Leather Wallet",
			Description:   "Slim bifold in full-grain leather.",
			Price:         price("39.00"),
			Images:        []string{"seed/voyager-wallet.jpg"},
			Category:      "accessories",
			InStock:       true,
			StockQuantity: 110,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:     "prd-4002",
			Name:          "Atlas Insulated Bottle",
			Description:   "750ml vacuum bottle, keeps drinks cold 24h.",
			Price:         price("28.50"),
			OriginalPrice: price("34.00"),
			Images:        []string{"seed/atlas-bottle.jpg"},
			Category:      "accessories",
			InStock:       true,
			StockQuantity: 130,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

// SeedCategories lists the distinct categories of the seed catalog in
// first-seen order.
func SeedCategories() []string {
	seen := make(map[string]struct{})
	var cs []string
	for _, p := range SeedCatalog() {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cs = append(cs, p.Category)
	}
	return cs
}
