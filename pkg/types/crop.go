package types

import "github.com/kisanmitra/kisanmitra/pkg/enums"

// CropInfo is a crop record tracked for a farmer.
type CropInfo struct {
	ID           string          `json:"id"`
	UserID       int64           `json:"userId,omitempty"`
	Name         string          `json:"name"`
	Variety      string          `json:"variety"`
	PlantingDate string          `json:"plantingDate"`
	HarvestDate  string          `json:"harvestDate"`
	Stage        enums.CropStage `json:"stage"`
}

// NewCrop is a crop record before the backend assigns its id.
type NewCrop struct {
	UserID       int64           `json:"userId,omitempty" validate:"omitempty,gt=0"`
	Name         string          `json:"name" validate:"required,max=80"`
	Variety      string          `json:"variety" validate:"max=80"`
	PlantingDate string          `json:"plantingDate" validate:"required,datetime=2006-01-02"`
	HarvestDate  string          `json:"harvestDate" validate:"omitempty,datetime=2006-01-02"`
	Stage        enums.CropStage `json:"stage" validate:"omitempty,crop_stage"`
}

// CropPatch carries the fields of a partial crop update; nil fields are left untouched.
type CropPatch struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Variety      *string          `json:"variety,omitempty" validate:"omitempty,max=80"`
	PlantingDate *string          `json:"plantingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	HarvestDate  *string          `json:"harvestDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Stage        *enums.CropStage `json:"stage,omitempty" validate:"omitempty,crop_stage"`
}

// Apply returns crop with the patch's non-nil fields applied.
func (p CropPatch) Apply(crop CropInfo) CropInfo {
	if p.Name != nil {
		crop.Name = *p.Name
	}
	if p.Variety != nil {
		crop.Variety = *p.Variety
	}
	if p.PlantingDate != nil {
		crop.PlantingDate = *p.PlantingDate
	}
	if p.HarvestDate != nil {
		crop.HarvestDate = *p.HarvestDate
	}
	if p.Stage != nil {
		crop.Stage = *p.Stage
	}
	return crop
}

// IsEmpty reports whether the patch changes nothing.
func (p CropPatch) IsEmpty() bool {
	return p.Name == nil && p.Variety == nil && p.PlantingDate == nil && p.HarvestDate == nil && p.Stage == nil
}
