package middleware

import (
	"net/http"

	"github.com/nmoreno/bazaar-backend/api/responses"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
)

// RequireVendor gates routes on the is_vendor capability bit.
func RequireVendor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsVendorFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "vendor account required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireBuyer gates routes on the is_buyer capability bit.
func RequireBuyer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsBuyerFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "buyer account required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
