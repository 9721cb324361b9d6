package controllers

import (
	"net/http"

	"github.com/tontonphone/storefront-backend/api/responses"
	"github.com/tontonphone/storefront-backend/api/validators"
	"github.com/tontonphone/storefront-backend/internal/prefs"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"github.com/tontonphone/storefront-backend/pkg/logger"
)

// PrefsUpdateRequest replaces the caller's preference map wholesale.
type PrefsUpdateRequest struct {
	Preferences prefs.Preferences `json:"preferences" validate:"required"`
}

// PrefsFetch serves the caller's stored preferences.
func PrefsFetch(svc prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"preferences": stored})
	}
}

// PrefsUpdate overwrites the caller's preferences.
func PrefsUpdate(svc prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body PrefsUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := svc.Put(r.Context(), userID, body.Preferences)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"preferences": stored})
	}
}
