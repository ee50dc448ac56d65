package entities

import "fmt"

// Category is the kind of support a ticket is for.
type Category string

const (
	// CategoryGeneral is for general support.
	CategoryGeneral Category = "general"

	// CategoryBilling is for billing questions.
	CategoryBilling Category = "billing"

	// CategoryTechnical is for technical support.
	CategoryTechnical Category = "technical"
)

// Categories returns every category, in the order they are offered to users.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryBilling,
		CategoryTechnical,
	}
}

// ParseCategory returns the category for the given select menu value.
func ParseCategory(value string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Label is the human readable name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryGeneral:
		return "General Support"
	case CategoryBilling:
		return "Billing"
	case CategoryTechnical:
		return "Technical Support"
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
