package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		name string
		want BackpressureAction
	}{
		{"kick", KickMember},
		{"drop", DropFrame},
		{"", KickMember},
		{"bogus", KickMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyFor(tt.name).OnBackPressure("room", nil))
		})
	}
}
