package controllers

import (
	"net/http"

	"github.com/nmoreno/bazaar-backend/api/responses"
	checkoutsvc "github.com/nmoreno/bazaar-backend/internal/checkout"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
)

// Checkout converts the buyer's cart into orders and an emailed invoice.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
