package school

import (
	"time"

	"github.com/shulehub/shule/core"
)

// School is a tenant. All users belong to exactly one School.
type School struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OrgID     string    `json:"org_id,omitempty"` // external organization id; once set, all membership calls target it
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewSchool contains information needed to create a new School.
type NewSchool struct {
	Name  string `json:"name" validate:"required"`
	OrgID string `json:"org_id" validate:"omitempty"`
}

func (ns *NewSchool) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.OrgID = core.CleanString(ns.OrgID)
	return core.Validate.Struct(ns)
}
