package enums

import "fmt"

// CropStage tracks where a crop is in its growing season.
type CropStage string

const (
	CropStagePlanted      CropStage = "planted"
	CropStageGrowing      CropStage = "growing"
	CropStageFlowering    CropStage = "flowering"
	CropStageHarvestReady CropStage = "harvest-ready"
	CropStageHarvested    CropStage = "harvested"
)

var validCropStages = []CropStage{
	CropStagePlanted,
	CropStageGrowing,
	CropStageFlowering,
	CropStageHarvestReady,
	CropStageHarvested,
}

// String implements fmt.Stringer.
func (c CropStage) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CropStage.
func (c CropStage) IsValid() bool {
	for _, candidate := range validCropStages {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCropStage converts raw input into a CropStage.
func ParseCropStage(value string) (CropStage, error) {
	for _, candidate := range validCropStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid crop stage %q", value)
}
