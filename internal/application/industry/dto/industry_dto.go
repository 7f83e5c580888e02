package dto

import (
	"github.com/erp/orderdesk/internal/domain/industry"
)

// IndustryResponse is a resolved industry profile.
// ResolvedFrom echoes the requested id; Fallback is set when the id was
// unknown and the general profile was returned instead.
type IndustryResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Categories   []string              `json:"categories"`
	Departments  []string              `json:"departments"`
	Units        []string              `json:"units"`
	Features     industry.FeatureFlags `json:"features"`
	DefaultRoles []string              `json:"default_roles"`
	WorkflowType string                `json:"workflow_type"`
	ResolvedFrom string                `json:"resolved_from,omitempty"`
	Fallback     bool                  `json:"fallback"`
}

// IndustrySummary is the list view of a profile
type IndustrySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	WorkflowType string `json:"workflow_type"`
}

// FeatureSetResponse tells the UI which actions and fields are available
type FeatureSetResponse struct {
	IndustryID         string                `json:"industry_id"`
	WorkflowType       string                `json:"workflow_type"`
	AllowsSales        bool                  `json:"allows_sales"`
	AllowsRequisitions bool                  `json:"allows_requisitions"`
	Flags              industry.FeatureFlags `json:"flags"`
	Enabled            []string              `json:"enabled"`
	Categories         []string              `json:"categories"`
	Departments        []string              `json:"departments"`
	Units              []string              `json:"units"`
	DefaultRoles       []string              `json:"default_roles"`
}

// FeatureCheckResponse answers a single flag query
type FeatureCheckResponse struct {
	IndustryID string `json:"industry_id"`
	Feature    string `json:"feature"`
	Enabled    bool   `json:"enabled"`
}

// ToIndustryResponse converts a profile
func ToIndustryResponse(cfg industry.Config, requested string, fallback bool) IndustryResponse {
	return IndustryResponse{
		ID:           cfg.ID,
		Name:         cfg.Name,
		Categories:   nonNil(cfg.Categories),
		Departments:  nonNil(cfg.Departments),
		Units:        nonNil(cfg.Units),
		Features:     cfg.Features,
		DefaultRoles: nonNil(cfg.DefaultRoles),
		WorkflowType: cfg.Workflow.String(),
		ResolvedFrom: requested,
		Fallback:     fallback,
	}
}

// ToIndustrySummaries converts a list of profiles
func ToIndustrySummaries(configs []industry.Config) []IndustrySummary {
	out := make([]IndustrySummary, len(configs))
	for i, cfg := range configs {
		out[i] = IndustrySummary{
			ID:           cfg.ID,
			Name:         cfg.Name,
			WorkflowType: cfg.Workflow.String(),
		}
	}
	return out
}

// ToFeatureSetResponse converts a feature projection
func ToFeatureSetResponse(fs industry.FeatureSet) FeatureSetResponse {
	enabled := fs.EnabledFeatures()
	names := make([]string, len(enabled))
	for i, f := range enabled {
		names[i] = string(f)
	}
	return FeatureSetResponse{
		IndustryID:         fs.IndustryID,
		WorkflowType:       fs.Workflow.String(),
		AllowsSales:        fs.Workflow.AllowsSales(),
		AllowsRequisitions: fs.Workflow.AllowsRequisitions(),
		Flags:              fs.Flags,
		Enabled:            names,
		Categories:         nonNil(fs.Categories),
		Departments:        nonNil(fs.Departments),
		Units:              nonNil(fs.Units),
		DefaultRoles:       nonNil(fs.DefaultRoles),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
