package item

import "fmt"

// Category is the closed enumeration of rentable equipment categories.
type Category string

const (
	CategoryPartySupplies Category = "party-supplies"
	CategoryPhotography   Category = "photography"
	CategoryCamping       Category = "camping"
	CategoryElectronics   Category = "electronics"
	CategoryFurniture     Category = "furniture"
	CategorySports        Category = "sports"
	CategoryOther         Category = "other"
)

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPartySupplies, CategoryPhotography, CategoryCamping,
		CategoryElectronics, CategoryFurniture, CategorySports, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string to a Category, returning an error if invalid.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid item category: %s", s)
	}
	return c, nil
}
