package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/APrigarina/open-model-zoo/internal/config"
)

func TestRegistry_SetAndGet(t *testing.T) {
	reg := NewRegistry()

	instance := NewInstance(&config.ModelConfig{Model: "/models/net"}, "net")
	reg.Set(instance)

	got, ok := reg.Get("net")
	assert.True(t, ok)
	assert.Equal(t, instance, got)

	// Ensure a missing instance returns false
	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()

	reg.Set(NewInstance(&config.ModelConfig{}, "net"))

	instance, err := reg.Lookup("net")
	assert.NoError(t, err)
	assert.Equal(t, "net", instance.ID)

	_, err = reg.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()

	reg.Set(NewInstance(&config.ModelConfig{}, "a"))
	reg.Set(NewInstance(&config.ModelConfig{}, "b"))

	assert.Len(t, reg.List(), 2)
}

func TestRegistry_Delete(t *testing.T) {
	reg := NewRegistry()

	reg.Set(NewInstance(&config.ModelConfig{}, "a"))
	reg.Delete("a")

	_, ok := reg.Get("a")
	assert.False(t, ok)
}

func TestInstance_StatusTransitions(t *testing.T) {
	instance := NewInstance(&config.ModelConfig{}, "net")
	assert.Equal(t, StatusPending, instance.Status)

	instance.SetResolved(Result{ModelFile: "/models/net.xml", WeightsFile: "/models/net.bin", Format: FormatIR})
	assert.Equal(t, StatusResolved, instance.Status)
	assert.NotNil(t, instance.ResolvedAt)
	assert.Empty(t, instance.Error)

	instance.SetFailed(&NotFoundError{Path: "/models", Detail: "no suitable model found in"})
	assert.Equal(t, StatusFailed, instance.Status)
	assert.NotEmpty(t, instance.Error)
}
