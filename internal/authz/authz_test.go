package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifaleee/MetroArt/internal/authz"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		identityID string
		ownerID    string
		action     authz.Action
		wantErr    bool
	}{
		{"owner may update", "u1", "u1", authz.ActionUpdate, false},
		{"owner may delete", "u1", "u1", authz.ActionDelete, false},
		{"non-owner update forbidden", "u2", "u1", authz.ActionUpdate, true},
		{"non-owner delete forbidden", "u2", "u1", authz.ActionDelete, true},
		{"empty identity forbidden", "", "u1", authz.ActionDelete, true},
		{"empty identity on empty owner forbidden", "", "", authz.ActionDelete, true},
		{"unknown action forbidden even for owner", "u1", "u1", authz.Action("read"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Authorize(tt.identityID, tt.ownerID, tt.action)
			if tt.wantErr {
				require.ErrorIs(t, err, authz.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
