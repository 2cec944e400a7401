package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/dnscheck"
	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/integration"
)

// Handler serves the integration API on top of the reconciliation engine.
type Handler struct {
	engine     *integration.Engine
	configPath string
}

func NewHandler(engine *integration.Engine, configPath string) *Handler {
	return &Handler{engine: engine, configPath: configPath}
}

// IntegrationResponse combines the status report with the descriptor
// read from the store.
type IntegrationResponse struct {
	Status      *integration.Status      `json:"status"`
	Integration *integration.Integration `json:"integration,omitempty"`
}

// ValidateRequest is the body of a validation call.
type ValidateRequest struct {
	NetworkName string `json:"network_name"`
	integration.CreateOptions
}

// ValidateResponse reports the pre-flight validation outcome.
type ValidateResponse struct {
	Valid  bool                `json:"valid"`
	Errors []map[string]string `json:"errors,omitempty"`
}

// GetIntegration handles GET /api/v1/networks/{name}/integration.
// The status badge always renders, even when the store is unreachable.
func (h *Handler) GetIntegration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	driver, err := integration.ParseDriver(r.URL.Query().Get("driver"))
	if err != nil {
		WriteInvalidRequest(w, err.Error())
		return
	}

	status := h.engine.IsIntegrationComplete(r.Context(), name, driver)
	integ, _ := h.engine.GetIntegration(r.Context(), name)

	if r.URL.Query().Get("probe") == "true" && integ != nil && integ.Gateway != "" {
		result := dnscheck.Probe(r.Context(), integ.Gateway)
		if result.Responding {
			status.Details["dns_responding"] = "true"
		} else {
			status.Details["dns_responding"] = "false"
		}
	}

	WriteJSON(w, http.StatusOK, IntegrationResponse{Status: status, Integration: integ})
}

// CreateIntegration handles POST /api/v1/networks/{name}/integration.
func (h *Handler) CreateIntegration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var opts integration.CreateOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	if err := h.engine.CreateIntegration(r.Context(), name, opts); err != nil {
		writeEngineError(w, err)
		return
	}

	driver, _ := integration.ParseDriver(string(opts.Driver))
	status := h.engine.IsIntegrationComplete(r.Context(), name, driver)
	WriteJSON(w, http.StatusCreated, IntegrationResponse{Status: status})
}

// RepairIntegration handles POST /api/v1/networks/{name}/integration/repair.
func (h *Handler) RepairIntegration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var opts integration.CreateOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.engine.RepairIntegration(r.Context(), name, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// DeleteIntegration handles DELETE /api/v1/networks/{name}/integration.
func (h *Handler) DeleteIntegration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	driver, err := integration.ParseDriver(r.URL.Query().Get("driver"))
	if err != nil {
		WriteInvalidRequest(w, err.Error())
		return
	}
	device := r.URL.Query().Get("device")

	if err := h.engine.RemoveIntegration(r.Context(), name, device, driver); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateIntegration handles POST /api/v1/integrations/validate.
func (h *Handler) ValidateIntegration(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	verrs := h.engine.ValidateIntegration(r.Context(), req.NetworkName, req.CreateOptions)
	WriteJSON(w, http.StatusOK, ValidateResponse{
		Valid:  len(verrs) == 0,
		Errors: validationDetails(verrs),
	})
}

// GetZones handles GET /api/v1/zones, listing reserved-prefix zones for
// the "join existing zone" selector.
func (h *Handler) GetZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.engine.ListReservedZones(r.Context())
	if err != nil {
		WriteStoreError(w, err.Error())
		return
	}
	if zones == nil {
		zones = []string{}
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"zones": zones})
}

// CheckDNS handles GET /api/v1/networks/{name}/dnscheck.
func (h *Handler) CheckDNS(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	integ, err := h.engine.GetIntegration(r.Context(), name)
	if err != nil {
		WriteStoreError(w, err.Error())
		return
	}
	if integ == nil || integ.Gateway == "" {
		WriteNotFound(w, "integration for network "+name)
		return
	}

	WriteJSON(w, http.StatusOK, dnscheck.Probe(r.Context(), integ.Gateway))
}

// CheckHealth handles GET /api/v1/health.
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeEngineError maps engine errors onto the API error envelope.
func writeEngineError(w http.ResponseWriter, err error) {
	if verrs, ok := err.(config.ValidationErrors); ok {
		WriteValidationError(w, "Validation failed", map[string]interface{}{
			"errors": validationDetails(verrs),
		})
		return
	}

	if derr, ok := err.(*errors.Error); ok {
		switch derr.Code {
		case errors.ErrCodeValidation:
			WriteInvalidRequest(w, derr.Message)
		case errors.ErrCodeStore:
			WriteStoreError(w, derr.Error())
		default:
			WriteInternalError(w, derr.Error())
		}
		return
	}

	WriteInternalError(w, err.Error())
}

func validationDetails(verrs config.ValidationErrors) []map[string]string {
	var details []map[string]string
	for _, ve := range verrs {
		details = append(details, map[string]string{
			"item":    ve.ItemName,
			"field":   ve.FieldPath,
			"message": ve.Message,
		})
	}
	return details
}
