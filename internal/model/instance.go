package model

import (
	"time"

	"github.com/APrigarina/open-model-zoo/internal/config"
)

// Status is the current resolution status of a model.
type Status string

const (
	// StatusPending indicates that the model has not been resolved yet.
	StatusPending Status = "pending"

	// StatusResolved indicates that all artifacts were located.
	StatusResolved Status = "resolved"

	// StatusFailed indicates that artifact resolution failed.
	StatusFailed Status = "failed"
)

// Instance represents a configured model and its resolved artifacts.
type Instance struct {
	Config     *config.ModelConfig
	ResolvedAt *time.Time
	ID         string
	Artifacts  Result
	Status     Status
	Error      string
}

// NewInstance creates a pending instance for a configured model.
func NewInstance(cfg *config.ModelConfig, id string) *Instance {
	return &Instance{
		Config: cfg,
		ID:     id,
		Status: StatusPending,
	}
}

// SetResolved records a successful resolution.
func (i *Instance) SetResolved(artifacts Result) {
	now := time.Now()
	i.Artifacts = artifacts
	i.ResolvedAt = &now
	i.Status = StatusResolved
	i.Error = ""
}

// SetFailed records a resolution failure.
func (i *Instance) SetFailed(err error) {
	i.Status = StatusFailed
	i.Error = err.Error()
}
