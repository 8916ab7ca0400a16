package enums

import "fmt"

// AdviceCategory groups agricultural advice by farming activity.
type AdviceCategory string

const (
	AdviceCategoryPlanting   AdviceCategory = "planting"
	AdviceCategoryFertilizer AdviceCategory = "fertilizer"
	AdviceCategoryPesticide  AdviceCategory = "pesticide"
	AdviceCategoryIrrigation AdviceCategory = "irrigation"
	AdviceCategoryHarvest    AdviceCategory = "harvest"
)

var validAdviceCategories = []AdviceCategory{
	AdviceCategoryPlanting,
	AdviceCategoryFertilizer,
	AdviceCategoryPesticide,
	AdviceCategoryIrrigation,
	AdviceCategoryHarvest,
}

// String implements fmt.Stringer.
func (a AdviceCategory) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AdviceCategory.
func (a AdviceCategory) IsValid() bool {
	for _, candidate := range validAdviceCategories {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdviceCategory converts raw input into an AdviceCategory.
func ParseAdviceCategory(value string) (AdviceCategory, error) {
	for _, candidate := range validAdviceCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid advice category %q", value)
}
