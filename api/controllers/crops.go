package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kisanmitra/kisanmitra/api/responses"
	"github.com/kisanmitra/kisanmitra/api/validators"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

const maxCropIDLength = 64

// CropsList handles GET /api/crops?userId=.
func CropsList(store CropStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop store unavailable"))
			return
		}
		userID, err := validators.ParseQueryID(r, "userId", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUserID(ctx, userID)
		}
		responses.WriteSuccess(w, store.ListCrops(ctx, userID))
	}
}

// CropCreate handles POST /api/crops.
func CropCreate(store CropStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop store unavailable"))
			return
		}

		var payload types.NewCrop
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.HarvestDate != "" && payload.HarvestDate < payload.PlantingDate {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"harvestDate": "must be on or after plantingDate"}))
			return
		}

		crop, err := store.CreateCrop(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, crop)
	}
}

// CropUpdate handles PUT /api/crops/{cropId}.
func CropUpdate(store CropStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop store unavailable"))
			return
		}

		cropID := validators.SanitizeString(chi.URLParam(r, "cropId"), 0)
		if cropID == "" || len(cropID) > maxCropIDLength {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid crop id"))
			return
		}

		var patch types.CropPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if patch.IsEmpty() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update"))
			return
		}

		crop, err := store.UpdateCrop(r.Context(), cropID, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, crop)
	}
}
