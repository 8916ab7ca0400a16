package types

// User is a farmer's profile.
type User struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone,omitempty"`
	Location    *Location    `json:"location,omitempty"`
	FarmDetails *FarmDetails `json:"farmDetails,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Address   string  `json:"address,omitempty"`
	District  string  `json:"district,omitempty"`
	State     string  `json:"state,omitempty"`
}

// FarmDetails describes the farm; Size is in acres.
type FarmDetails struct {
	Size           float64  `json:"size" validate:"gte=0"`
	CropTypes      []string `json:"cropTypes" validate:"dive,required"`
	SoilType       string   `json:"soilType,omitempty"`
	IrrigationType string   `json:"irrigationType,omitempty"`
}

// UserPatch carries the fields of a partial profile update.
type UserPatch struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone       *string      `json:"phone,omitempty" validate:"omitempty,in_mobile"`
	Location    *Location    `json:"location,omitempty"`
	FarmDetails *FarmDetails `json:"farmDetails,omitempty"`
}

// Apply returns user with the patch's non-nil fields applied.
func (p UserPatch) Apply(user User) User {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Phone != nil {
		user.Phone = *p.Phone
	}
	if p.Location != nil {
		loc := *p.Location
		user.Location = &loc
	}
	if p.FarmDetails != nil {
		details := *p.FarmDetails
		details.CropTypes = append([]string(nil), p.FarmDetails.CropTypes...)
		user.FarmDetails = &details
	}
	return user
}
