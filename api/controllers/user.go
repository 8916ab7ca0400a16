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

// UserProfile handles GET /api/user/{userId}.
func UserProfile(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user store unavailable"))
			return
		}
		userID, err := validators.ParseID("userId", chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := store.GetUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UserUpdate handles PUT /api/user/{userId}.
func UserUpdate(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user store unavailable"))
			return
		}
		userID, err := validators.ParseID("userId", chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var patch types.UserPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if patch.Phone != nil {
			digits := validators.DigitsOnly(*patch.Phone)
			patch.Phone = &digits
		}
		if patch.Name != nil {
			name := validators.SanitizeString(*patch.Name, 120)
			patch.Name = &name
		}

		user, err := store.UpdateUser(r.Context(), userID, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
