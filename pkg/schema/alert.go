package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Alert holds the properties of a single active alert feature
type Alert struct {
	ID          string `json:"id,omitempty"`
	Event       string `json:"event,omitempty"`
	Headline    string `json:"headline,omitempty"`
	AreaDesc    string `json:"areaDesc,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
	Description string `json:"description,omitempty"`
	Instruction string `json:"instruction,omitempty"`
	Effective   string `json:"effective,omitempty"`
	Expires     string `json:"expires,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (a Alert) String() string {
	return types.Stringify(a)
}
