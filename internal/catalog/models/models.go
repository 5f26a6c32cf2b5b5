package models

import "slices"

// App describes a catalog entry. Catalog entries are read-only after load;
// callers always receive copies.
type App struct {
	ID                   string   `json:"id" yaml:"id"`
	Name                 string   `json:"name" yaml:"name"`
	Category             string   `json:"category" yaml:"category"`
	Icon                 string   `json:"icon" yaml:"icon"`
	RequestedPermissions []string `json:"requestedPermissions" yaml:"requestedPermissions"`
	PolicyKeywords       []string `json:"policyKeywords" yaml:"policyKeywords"`
	Description          string   `json:"description" yaml:"description"`
}

// Clone returns a deep copy so slice fields can't alias catalog state.
func (a App) Clone() App {
	a.RequestedPermissions = slices.Clone(a.RequestedPermissions)
	a.PolicyKeywords = slices.Clone(a.PolicyKeywords)
	if a.RequestedPermissions == nil {
		a.RequestedPermissions = []string{}
	}
	if a.PolicyKeywords == nil {
		a.PolicyKeywords = []string{}
	}
	return a
}

func (a App) HasPermission(permission string) bool {
	return slices.Contains(a.RequestedPermissions, permission)
}
