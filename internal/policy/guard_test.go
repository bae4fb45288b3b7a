package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/grolo-gateway/internal/models"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
)

func TestCheckPromote(t *testing.T) {
	tests := []struct {
		name    string
		target  models.UserInfo
		perms   models.AdminPermissionSet
		wantErr error
	}{
		{name: "user promoted", target: models.UserInfo{Username: "bob", Role: models.RoleUser}, perms: allPermissions},
		{name: "already admin", target: models.UserInfo{Username: "bob", Role: models.RoleAdmin}, perms: allPermissions, wantErr: policy.ErrPermissionDenied},
		{name: "super admin", target: models.UserInfo{Username: "root", Role: models.RoleSuperAdmin}, perms: allPermissions, wantErr: policy.ErrPermissionDenied},
		{name: "no right", target: models.UserInfo{Username: "bob", Role: models.RoleUser}, wantErr: policy.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckPromote(tt.target, tt.perms)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckDemote(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		target  models.UserInfo
		perms   models.AdminPermissionSet
		wantErr error
	}{
		{name: "admin demoted", caller: "alice", target: models.UserInfo{Username: "bob", Role: models.RoleAdmin}, perms: allPermissions},
		{name: "self", caller: "alice", target: models.UserInfo{Username: "alice", Role: models.RoleAdmin}, perms: allPermissions, wantErr: policy.ErrSelfActionForbidden},
		{name: "super admin target", caller: "alice", target: models.UserInfo{Username: "root", Role: models.RoleSuperAdmin}, perms: allPermissions, wantErr: policy.ErrPermissionDenied},
		{name: "not admin", caller: "alice", target: models.UserInfo{Username: "bob", Role: models.RoleUser}, perms: allPermissions, wantErr: policy.ErrPermissionDenied},
		{name: "no right", caller: "alice", target: models.UserInfo{Username: "bob", Role: models.RoleAdmin}, wantErr: policy.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckDemote(tt.caller, tt.target, tt.perms)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckDemote_SuperAdminAlwaysFails(t *testing.T) {
	target := models.UserInfo{Username: "root", Role: models.RoleSuperAdmin}
	for _, perms := range []models.AdminPermissionSet{{}, allPermissions, {CanDemote: true}} {
		for _, caller := range []string{"root", "alice"} {
			assert.Error(t, policy.CheckDemote(caller, target, perms))
		}
	}
}

func TestCheckAdminPanel(t *testing.T) {
	assert.NoError(t, policy.CheckAdminPanel(models.AdminPermissionSet{CanViewAdminPanel: true}))
	assert.ErrorIs(t, policy.CheckAdminPanel(models.AdminPermissionSet{}), policy.ErrPermissionDenied)
}
