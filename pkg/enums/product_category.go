package enums

import "fmt"

// ProductCategory represents the closed set of catalog categories.
type ProductCategory string

const (
	ProductCategoryHarness ProductCategory = "harness"
	ProductCategoryLeash   ProductCategory = "leash"
	ProductCategoryCollar  ProductCategory = "collar"
)

var validProductCategories = []ProductCategory{
	ProductCategoryHarness,
	ProductCategoryLeash,
	ProductCategoryCollar,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// DefaultSizeLabels returns the fixed size breakdown rendered for a category,
// regardless of which sizes actually carry stock.
func (c ProductCategory) DefaultSizeLabels() []string {
	switch c {
	case ProductCategoryHarness, ProductCategoryCollar:
		return []string{"Small", "Medium", "Large"}
	case ProductCategoryLeash:
		return []string{"One Size"}
	default:
		return nil
	}
}
