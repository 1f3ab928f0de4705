package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophupload/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	ServerURL     string `json:"server_url"`
	ApplicationID string `json:"application_id"`
	WorkspaceID   string `json:"workspace_id"`
	LinkBasePath  string `json:"link_base_path"`
	FileField     string `json:"file_field"`
	UserID        string `json:"user_id"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
	OtelEndpoint  string `json:"otel_endpoint"`
	Interactive   *bool  `json:"interactive"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.ServerURL, jc.ServerURL)
	overlay(&cfg.ApplicationID, jc.ApplicationID)
	overlay(&cfg.WorkspaceID, jc.WorkspaceID)
	overlay(&cfg.LinkBasePath, jc.LinkBasePath)
	overlay(&cfg.FileField, jc.FileField)
	overlay(&cfg.UserID, jc.UserID)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.OtelEndpoint, jc.OtelEndpoint)
	if jc.Interactive != nil {
		cfg.Interactive = *jc.Interactive
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
