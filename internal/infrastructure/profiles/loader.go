// Package profiles loads extra or replacement industry profiles from a
// TOML, YAML or JSON file and installs them into an industry.Registry.
//
// The file holds a list under the "industries" key:
//
//	[[industries]]
//	id = "pharmacy"
//	name = "Pharmacy"
//	workflow_type = "sales"
//	units = ["box", "strip"]
//
//	[industries.features]
//	point_of_sale = true
//	prescription_control = true
package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erp/orderdesk/internal/domain/industry"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const profilesKey = "industries"

// Load reads the profiles listed in path. The format follows the extension.
func Load(path string) ([]industry.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("profiles file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}

	var configs []industry.Config
	if err := v.UnmarshalKey(profilesKey, &configs); err != nil {
		return nil, fmt.Errorf("failed to decode profiles in %s: %w", path, err)
	}
	for i := range configs {
		configs[i].ID = industry.NormalizeID(configs[i].ID)
		configs[i].Workflow = industry.WorkflowType(strings.ToLower(strings.TrimSpace(string(configs[i].Workflow))))
	}
	return configs, nil
}

// Apply loads path and overrides the matching profiles in reg. An empty path
// is a no-op. Nothing is installed unless every profile in the file is valid.
func Apply(reg *industry.Registry, path string, logger *zap.Logger) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, nil
	}

	configs, err := Load(path)
	if err != nil {
		return 0, err
	}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return 0, fmt.Errorf("profiles file %s: %w", path, err)
		}
	}

	for _, cfg := range configs {
		replaced := reg.Known(cfg.ID)
		if err := reg.Override(cfg); err != nil {
			return 0, err
		}
		logger.Info("Industry profile loaded",
			zap.String("industry", cfg.ID),
			zap.Bool("replaced", replaced),
			zap.String("workflow_type", cfg.Workflow.String()),
		)
	}
	return len(configs), nil
}
