package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON decodes and validates the request body into dst. On failure the
// response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request body"
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// writeServiceError maps a service error to its HTTP status. Anything not
// recognized is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, log logrus.FieldLogger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		respond.Error(w, http.StatusForbidden, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		respond.Error(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		log.WithField("op", op).WithError(err).Error("request failed")
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// authorize resolves the request principal and checks it against the policy.
func authorize(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, op string, action auth.Action, resource auth.Resource) (*auth.Principal, bool) {
	p, _ := auth.PrincipalFrom(r.Context())
	if err := auth.CanPerform(p, action, resource); err != nil {
		writeServiceError(w, log, op, err)
		return nil, false
	}
	return p, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		respond.Error(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
