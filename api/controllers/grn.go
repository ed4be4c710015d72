package controllers

import (
	"net/http"

	"github.com/brewopshq/brewhaus-backend/api/responses"
	"github.com/brewopshq/brewhaus-backend/api/validators"
	grnsvc "github.com/brewopshq/brewhaus-backend/internal/grn"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
)

func AddGRN(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grn service unavailable"))
			return
		}

		var payload grnsvc.CreateGRNInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateGRN(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grn service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "grn_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload grnsvc.UpdateGRNInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ViewGRN(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grn service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "grn_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.View(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ViewAllGRNs(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grn service unavailable"))
			return
		}

		views, err := svc.ViewAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
