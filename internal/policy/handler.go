package policy

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odontia/odontia/internal/platform/httpx"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
	"github.com/odontia/odontia/internal/tenancy"
)

// AbilityHandler exposes the caller's own ability.
type AbilityHandler struct {
	logger    *slog.Logger
	gate      *Gate
	validator *validator.Validate
}

// NewAbilityHandler builds AbilityHandler instance.
func NewAbilityHandler(logger *slog.Logger, gate *Gate) *AbilityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AbilityHandler{logger: logger, gate: gate, validator: rbac.NewValidator()}
}

// MountRoutes registers ability routes.
func (h *AbilityHandler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(shared.OpAbilityView)).Get("/me/ability", h.showAbility)
	r.With(h.gate.Require(shared.OpAuthzCheck)).Post("/authz/check", h.check)
}

type abilityResponse struct {
	UserID       string       `json:"user_id"`
	Role         rbac.Role    `json:"role"`
	TenantID     string       `json:"tenant_id,omitempty"`
	IsSuperAdmin bool         `json:"is_super_admin"`
	Grants       []rbac.Grant `json:"grants"`
}

func (h *AbilityHandler) showAbility(w http.ResponseWriter, r *http.Request) {
	p := rbac.PrincipalFromContext(r.Context())
	tc, _ := tenancy.FromContext(r.Context())
	httpx.JSON(w, http.StatusOK, abilityResponse{
		UserID:       tc.UserID,
		Role:         tc.Role,
		TenantID:     tc.TenantID,
		IsSuperAdmin: tc.IsSuperAdmin,
		Grants:       rbac.Build(*p).Grants(),
	})
}

// checkRequest names either an action and subject pair or an operation.
type checkRequest struct {
	Action    string `json:"action" validate:"required_without=Operation,action"`
	Subject   string `json:"subject" validate:"required_with=Action,subject"`
	Operation string `json:"operation" validate:"excluded_with=Action,max=64"`
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

func (h *AbilityHandler) check(w http.ResponseWriter, r *http.Request) {
	var body checkRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(body); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, invalidFields(err)))
		return
	}
	req, err := h.checkRequirement(body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	err = h.gate.Enforce(r.Context(), rbac.PrincipalFromContext(r.Context()), req)
	if err != nil && !shared.IsDenial(err) {
		h.logger.Error("authz check", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, checkResponse{Allowed: err == nil})
}

func (h *AbilityHandler) checkRequirement(body checkRequest) (Requirement, error) {
	if body.Operation != "" {
		req, err := h.gate.Registry().Lookup(body.Operation)
		if errors.Is(err, ErrUnknownOperation) {
			return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
		}
		return req, err
	}
	action, _ := rbac.ParseAction(body.Action)
	subject, _ := rbac.ParseSubject(body.Subject)
	return Require(Can(action, subject)), nil
}

func invalidFields(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request"
	}
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return strings.Join(names, ", ")
}
