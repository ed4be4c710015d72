package controllers

import (
	"net/http"

	"github.com/brewopshq/brewhaus-backend/api/responses"
	dashboardsvc "github.com/brewopshq/brewhaus-backend/internal/dashboard"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
)

// Dashboard returns the cached aggregate counts.
func Dashboard(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		totals, err := svc.Totals(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}
