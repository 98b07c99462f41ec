package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lab A", "lab-a"},
		{" Lab A ", "lab-a"},
		{"lab a", "lab-a"},
		{"LAB   A", "lab-a"},
		{"Greenhouse\tWing 2", "greenhouse-wing-2"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MakeSlug(tt.name), "MakeSlug(%q)", tt.name)
	}
}
