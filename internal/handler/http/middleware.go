package http

import (
	"net/http"

	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
)

// RequireOwner admits only the owner of the {storeId} in the path.
// It must run after the authentication middleware.
func RequireOwner(service catalog.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storeID, ok := uuidParam(w, r, "storeId")
			if !ok {
				return
			}

			userID, err := auth.UserIDFromContext(r.Context())
			if err != nil {
				handleError(w, "stores.authorize", err, "Unauthenticated")
				return
			}

			if err := service.Authorize(r.Context(), userID, storeID); err != nil {
				handleError(w, "stores.authorize", err, "Failed to authorize request")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
