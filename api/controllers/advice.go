package controllers

import (
	"net/http"
	"strings"

	"github.com/kisanmitra/kisanmitra/api/responses"
	"github.com/kisanmitra/kisanmitra/api/validators"
	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	"github.com/kisanmitra/kisanmitra/pkg/enums"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
)

// AdviceList handles GET /api/advice filtered by userId and/or category.
func AdviceList(src AdviceSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advice source unavailable"))
			return
		}

		userID, err := validators.ParseQueryID(r, "userId", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := farmdata.AdviceFilter{UserID: userID}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseAdviceCategory(strings.ToLower(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
					WithDetails(map[string]any{"field": "category", "value": raw}))
				return
			}
			filter.Category = category
		}

		responses.WriteSuccess(w, src.ListAdvice(r.Context(), filter))
	}
}
