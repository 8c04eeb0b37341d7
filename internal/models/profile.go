package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/bump/internal/pregnancy"
)

// Profile is the single pregnancy profile: who it belongs to and the
// reference point all progress is derived from.
type Profile struct {
	FirstName string                   `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string                   `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Reference pregnancy.ReferencePoint `json:"reference" yaml:"reference"`
	CreatedAt time.Time                `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time                `json:"updated_at" yaml:"updated_at"`
}

// Validate re-runs the reference point rules against now.
func (p *Profile) Validate(now time.Time) error {
	if err := pregnancy.Validate(p.Reference.Candidate(), now); err != nil {
		return err
	}
	if len(p.FirstName) > 100 || len(p.LastName) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	return nil
}

// DisplayName returns "First Last", or an empty string when no name is set.
func (p *Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Status is a convenience for pregnancy.ComputeStatus on the profile's reference point.
func (p *Profile) Status(at time.Time) pregnancy.Status {
	return pregnancy.ComputeStatus(p.Reference, at)
}
