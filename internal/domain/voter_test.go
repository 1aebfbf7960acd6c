package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVoterID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"V1", false},
		{"V0", false},
		{"V007", false},
		{"V1234567890123456789", false},
		{"", true},
		{"V", true},
		{"v12", true},
		{"12", true},
		{"V12x", true},
		{"XV12", true},
		{"V 12", true},
		{"V12\n", true},
		{"V+1", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateVoterID(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVoterIDFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVoterIdentityIsIDOnly(t *testing.T) {
	a := NewVoter("V1", "Alice")
	b := NewVoter("V1", "Somebody Else")
	c := NewVoter("V2", "Alice")

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestNewVoterTrimsName(t *testing.T) {
	v := NewVoter("V1", "  Ada  ")
	assert.Equal(t, "Ada", v.Name)
	assert.Equal(t, "V1", v.ID)
}
