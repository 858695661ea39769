package models

import (
	"fmt"
	"strings"
)

// Category is a closed classification tag on expense transactions used for
// budgeting.
type Category string

const (
	CategoryFNB           Category = "FNB"
	CategoryRent          Category = "RENT"
	CategoryTransport     Category = "TRANSPORT"
	CategoryGroceries     Category = "GROCERIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryMedicine      Category = "MEDICINE"
	CategoryUtility       Category = "UTILITY"
	CategoryGifts         Category = "GIFTS"
	CategoryFitness       Category = "FITNESS"
	CategoryEducation     Category = "EDUCATION"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFNB,
	CategoryRent,
	CategoryTransport,
	CategoryGroceries,
	CategoryEntertainment,
	CategoryMedicine,
	CategoryUtility,
	CategoryGifts,
	CategoryFitness,
	CategoryEducation,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFNB, CategoryRent, CategoryTransport, CategoryGroceries,
		CategoryEntertainment, CategoryMedicine, CategoryUtility,
		CategoryGifts, CategoryFitness, CategoryEducation:
		return true
	}
	return false
}

// ParseCategory converts a case-insensitive name into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
