package material

import (
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	m := New()

	assert.Equal(t, core.NewVec3(1, 1, 1), m.Color)
	assert.Equal(t, 0.0, m.Reflective)
	assert.Equal(t, 0.0, m.Transparency)
	assert.Equal(t, Vacuum, m.RefractiveIndex)
}

func TestNewGlass(t *testing.T) {
	m := NewGlass()

	assert.Equal(t, 1.0, m.Transparency)
	assert.Equal(t, 1.5, m.RefractiveIndex)
	assert.NotSame(t, m, NewGlass(), "each call returns a fresh handle")
}

func TestIndexOfRefraction_NilIsVacuum(t *testing.T) {
	var m *Material
	assert.Equal(t, Vacuum, m.IndexOfRefraction())
	assert.Equal(t, Diamond, NewDielectric(Diamond).IndexOfRefraction())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Material
		expected bool
	}{
		{"Same contents, different handles", NewGlass(), NewGlass(), true},
		{"Different index", NewGlass(), NewDielectric(Water), false},
		{"Different color", New(), &Material{Color: core.NewVec3(1, 0, 0), RefractiveIndex: Vacuum}, false},
		{"Both nil", nil, nil, true},
		{"One nil", New(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	original := NewGlass()
	clone := original.Clone()

	clone.RefractiveIndex = Diamond
	assert.Equal(t, Glass, original.RefractiveIndex)
	assert.True(t, original.Equal(NewGlass()))
}
