package initializers

import (
	"fmt"

	"github.com/nilamroots/nilamroots-api/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedCatalog() []models.Product {
	return []models.Product{
		{
			Name:         "Nilam Signature Black Herbal Oil (500ml)",
			Description:  "Our flagship product. A potent, dark blend of roasted amla, hibiscus flowers and roots infused in wood-pressed coconut oil, prepared the traditional 'Kanjiram' way to halt hairfall and darken premature greying.",
			Price:        549,
			Images:       datatypes.JSONSlice[string]{"/assets/nilam_roots_500ml_v2.jpg"},
			Features:     datatypes.JSONSlice[string]{"Stops Hairfall in 7 Days", "Darkens Grey Hair", "Cooling Effect", "Traditional Recipe"},
			InStock:      true,
			Rating:       4.9,
			ReviewsCount: 203,
		},
		{
			Name:         "Nilam Signature Black Herbal Oil (1 Litre)",
			Description:  "The complete 3-month course for total hair transformation. Our signature black herbal oil in a value saver pack, ideal for families or long-term treatment.",
			Price:        999,
			Images:       datatypes.JSONSlice[string]{"/assets/nilam_roots_1ltr_v2.jpg"},
			Features:     datatypes.JSONSlice[string]{"Best Value", "Long-term Regrowth", "Family Pack", "Free Shipping"},
			InStock:      true,
			Rating:       5.0,
			ReviewsCount: 120,
		},
		{
			Name:         "Nilam Neelibringadi Intensive Oil",
			Description:  "A classic Ayurvedic formulation prepared with indigo, false daisy and gooseberry. Remedy for severe dandruff, sleeplessness and scalp infections.",
			Price:        450,
			Images:       datatypes.JSONSlice[string]{"/assets/nilam_roots_shop.jpg"},
			Features:     datatypes.JSONSlice[string]{"Cures Dandruff", "Relieves Headache", "Promotes Deep Sleep", "Cooling Therapy"},
			InStock:      true,
			Rating:       4.7,
			ReviewsCount: 85,
		},
		{
			Name:         "Nilam Onion & Curry Leaf Regrowth Oil",
			Description:  "A fusion of sulfur-rich small onions and iron-packed curry leaves for balding spots and thinning hair.",
			Price:        399,
			Images:       datatypes.JSONSlice[string]{"/assets/nilam_roots_shop.jpg"},
			Features:     datatypes.JSONSlice[string]{"Boosts Regrowth", "Fights Thinning", "Sulfur Rich", "Volumizing"},
			InStock:      true,
			Rating:       4.6,
			ReviewsCount: 64,
		},
	}
}

// SeedProducts fills an empty catalog; a catalog with any rows is left alone.
func SeedProducts(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := seedCatalog()
	if err := db.Create(&products).Error; err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	Logger.Info("Catalog seeded", zap.Int("products", len(products)))
	return len(products), nil
}
