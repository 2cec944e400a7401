package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/hostcfg/podnet/internal/config"
)

// SettingsResponse groups the configurable sections. The API bind
// address is excluded: it is not configurable via the API.
type SettingsResponse struct {
	General *config.GeneralConfig `json:"general"`
	Naming  *config.NamingConfig  `json:"naming"`
}

// GetSettings returns the current settings.
// GET /api/v1/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loadConfig()
	if err != nil {
		WriteInternalError(w, "Failed to load configuration: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, SettingsResponse{General: cfg.General, Naming: cfg.Naming})
}

// UpdateSettings updates settings (supports partial updates).
// PATCH /api/v1/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates SettingsResponse
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
		return
	}

	cfg, err := h.loadConfig()
	if err != nil {
		WriteInternalError(w, "Failed to load configuration: "+err.Error())
		return
	}

	// Apply partial updates (only update non-zero fields)
	if updates.General != nil {
		if updates.General.ApplyTimeoutSeconds > 0 {
			cfg.General.ApplyTimeoutSeconds = updates.General.ApplyTimeoutSeconds
		}
		if updates.General.ReservedZonePrefix != "" {
			cfg.General.ReservedZonePrefix = updates.General.ReservedZonePrefix
		}
		if updates.General.ULAPrefix != "" {
			cfg.General.ULAPrefix = updates.General.ULAPrefix
		}
		if updates.General.DnsmasqInitScript != "" {
			cfg.General.DnsmasqInitScript = updates.General.DnsmasqInitScript
		}
		if updates.General.DnsmasqSettleDelayMs > 0 {
			cfg.General.DnsmasqSettleDelayMs = updates.General.DnsmasqSettleDelayMs
		}
	}
	if updates.Naming != nil {
		if updates.Naming.DeviceTemplate != "" {
			cfg.Naming.DeviceTemplate = updates.Naming.DeviceTemplate
		}
		if updates.Naming.ZoneTemplate != "" {
			cfg.Naming.ZoneTemplate = updates.Naming.ZoneTemplate
		}
		if updates.Naming.DNSRuleTemplate != "" {
			cfg.Naming.DNSRuleTemplate = updates.Naming.DNSRuleTemplate
		}
	}

	if err := cfg.ValidateConfig(); err != nil {
		if verrs, ok := err.(config.ValidationErrors); ok {
			WriteValidationError(w, "Configuration validation failed", map[string]interface{}{
				"errors": validationDetails(verrs),
			})
			return
		}
		WriteValidationError(w, "Configuration validation failed: "+err.Error(), nil)
		return
	}

	if err := cfg.WriteConfig(); err != nil {
		WriteInternalError(w, "Failed to save configuration: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, SettingsResponse{General: cfg.General, Naming: cfg.Naming})
}

// loadConfig reads the configuration file fresh, falling back to
// defaults when the host has no file yet. The fallback still carries
// the configured path so an update can create the file.
func (h *Handler) loadConfig() (*config.Config, error) {
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		cfg := config.Default()
		if err := cfg.SetConfigFilePath(h.configPath); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.LoadConfig(h.configPath)
}
