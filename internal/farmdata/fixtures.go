package farmdata

import (
	"github.com/kisanmitra/kisanmitra/pkg/enums"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// Fixtures is a batch of records loaded into a Repository.
type Fixtures struct {
	Users  []types.User
	Crops  []types.CropInfo
	Advice []AdviceFixture
}

// AdviceFixture addresses advice to one user, or to everyone when UserID is 0.
type AdviceFixture struct {
	UserID int64
	Advice types.AgricultureAdvice
}

// DefaultFixtures returns the demo farmers, crops and advice served in development.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Users: []types.User{
			{
				ID:    1,
				Name:  "Ramesh Kumar",
				Phone: "9876543210",
				Location: &types.Location{
					Latitude:  28.6139,
					Longitude: 77.209,
					Address:   "Village Alipur",
					District:  "North Delhi",
					State:     "Delhi",
				},
				FarmDetails: &types.FarmDetails{
					Size:           4.5,
					CropTypes:      []string{"wheat", "mustard"},
					SoilType:       "alluvial",
					IrrigationType: "tube well",
				},
			},
			{
				ID:    2,
				Name:  "Lakshmi Reddy",
				Phone: "9123456780",
				Location: &types.Location{
					Latitude:  17.385,
					Longitude: 78.4867,
					District:  "Rangareddy",
					State:     "Telangana",
				},
				FarmDetails: &types.FarmDetails{
					Size:           2,
					CropTypes:      []string{"rice", "cotton"},
					SoilType:       "black",
					IrrigationType: "drip",
				},
			},
		},
		Crops: []types.CropInfo{
			{ID: "7d0c9a52-4a43-4f55-9a3e-1c0f5b1e2a01", UserID: 1, Name: "Wheat", Variety: "HD-2967", PlantingDate: "2025-11-10", HarvestDate: "2026-04-05", Stage: enums.CropStageHarvested},
			{ID: "7d0c9a52-4a43-4f55-9a3e-1c0f5b1e2a02", UserID: 1, Name: "Mustard", Variety: "Pusa Bold", PlantingDate: "2026-10-05", HarvestDate: "2027-02-20", Stage: enums.CropStagePlanted},
			{ID: "7d0c9a52-4a43-4f55-9a3e-1c0f5b1e2a03", UserID: 2, Name: "Rice", Variety: "Sona Masuri", PlantingDate: "2026-06-20", HarvestDate: "2026-10-25", Stage: enums.CropStageHarvestReady},
			{ID: "7d0c9a52-4a43-4f55-9a3e-1c0f5b1e2a04", UserID: 2, Name: "Cotton", Variety: "Bt Cotton", PlantingDate: "2026-06-01", HarvestDate: "2026-12-15", Stage: enums.CropStageFlowering},
		},
		Advice: []AdviceFixture{
			{Advice: types.AgricultureAdvice{
				ID:          "adv-001",
				Title:       "Prepare for rabi sowing",
				Description: "Test soil moisture before sowing wheat; sow when the top layer is moist but not wet.",
				Category:    enums.AdviceCategoryPlanting,
				Urgency:     enums.UrgencyMedium,
				DateCreated: "2026-10-10",
			}},
			{Advice: types.AgricultureAdvice{
				ID:          "adv-002",
				Title:       "Irrigate in the early morning",
				Description: "Water before 8 AM to reduce evaporation losses during dry spells.",
				Category:    enums.AdviceCategoryIrrigation,
				Urgency:     enums.UrgencyLow,
				DateCreated: "2026-10-01",
			}},
			{UserID: 1, Advice: types.AgricultureAdvice{
				ID:          "adv-101",
				Title:       "Apply basal dose to mustard",
				Description: "Apply DAP at sowing and keep urea for the first irrigation.",
				Category:    enums.AdviceCategoryFertilizer,
				Urgency:     enums.UrgencyHigh,
				DateCreated: "2026-10-12",
			}},
			{UserID: 2, Advice: types.AgricultureAdvice{
				ID:          "adv-201",
				Title:       "Watch for pink bollworm",
				Description: "Install pheromone traps in cotton and inspect flowers twice a week.",
				Category:    enums.AdviceCategoryPesticide,
				Urgency:     enums.UrgencyHigh,
				DateCreated: "2026-10-14",
			}},
			{UserID: 2, Advice: types.AgricultureAdvice{
				ID:          "adv-202",
				Title:       "Harvest rice at 20% grain moisture",
				Description: "Drain the field ten days before harvest and cut when most grains are golden.",
				Category:    enums.AdviceCategoryHarvest,
				Urgency:     enums.UrgencyMedium,
				DateCreated: "2026-10-08",
			}},
		},
	}
}
