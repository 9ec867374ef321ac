package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/payment"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			details[field] = fmt.Sprintf("%s is required", field)
		case "uuid":
			details[field] = fmt.Sprintf("%s must be a valid id", field)
		case "gt":
			details[field] = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "min":
			details[field] = fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		default:
			details[field] = fmt.Sprintf("%s failed on %s", field, fe.Tag())
		}
	}
	return details
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrEmptyProductList),
		errors.Is(err, payment.ErrInvalidSignature),
		errors.Is(err, catalog.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, order.ErrNoProductsFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func clientMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, order.ErrEmptyProductList):
		return "Product ids are required"
	case errors.Is(err, order.ErrNoProductsFound):
		return "No products found"
	case errors.Is(err, payment.ErrInvalidSignature):
		return "Invalid webhook signature"
	case errors.Is(err, catalog.ErrInvalidReference):
		return "Referenced entity does not exist"
	case errors.Is(err, auth.ErrUnauthenticated):
		return "Unauthenticated"
	case errors.Is(err, catalog.ErrForbidden):
		return "Unauthorized"
	case errors.Is(err, catalog.ErrNotFound):
		return "Not found"
	case errors.Is(err, catalog.ErrInUse):
		return "Entity is still in use"
	default:
		return fallback
	}
}

// handleError logs err under op and writes the mapped status. Internal details never reach the client.
func handleError(w http.ResponseWriter, op string, err error, fallback string) {
	status := mapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("op", op).Int("status", status).Msg("Request rejected")
	}
	respondWithError(w, status, clientMessage(err, fallback))
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// It writes the 400 response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, op string, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	if err := v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Str("op", op).Type("validation_error_type", err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return false
	}
	return true
}

// uuidParam parses a chi URL parameter, answering 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.FromString(raw)
	if err != nil {
		log.Warn().Err(err).Str(name, raw).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s parameter", name))
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user; routes without the auth middleware get "".
func currentUser(r *http.Request) string {
	userID, _ := auth.UserIDFromContext(r.Context())
	return userID
}

func queryBool(r *http.Request, key string) bool {
	return strings.EqualFold(r.URL.Query().Get(key), "true")
}

func queryUUID(r *http.Request, key string) uuid.UUID {
	return uuid.FromStringOrNil(r.URL.Query().Get(key))
}
