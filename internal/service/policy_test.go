package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
)

func TestPolicyCheck(t *testing.T) {
	alice := &auth.Principal{ID: 1, Username: "alice"}

	tests := []struct {
		name      string
		policy    Policy
		action    Action
		principal *auth.Principal
		want      error
	}{
		{"anonymous read on post", PostPolicy, ActionList, nil, nil},
		{"anonymous write on post", PostPolicy, ActionCreate, nil, ErrUnauthenticated},
		{"authenticated write on post", PostPolicy, ActionUpdate, alice, nil},
		{"anonymous group create", GroupPolicy, ActionCreate, nil, ErrMethodNotAllowed},
		{"authenticated group create", GroupPolicy, ActionCreate, alice, ErrMethodNotAllowed},
		{"group delete", GroupPolicy, ActionDelete, alice, ErrMethodNotAllowed},
		{"anonymous follow list", FollowPolicy, ActionList, nil, ErrUnauthenticated},
		{"follow update", FollowPolicy, ActionUpdate, alice, ErrMethodNotAllowed},
		{"follow delete", FollowPolicy, ActionDelete, alice, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Check(tt.action, tt.principal)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGroupPolicyCapabilities(t *testing.T) {
	assert.False(t, GroupPolicy.Creatable())
	assert.False(t, GroupPolicy.Updatable())
	assert.False(t, GroupPolicy.Deletable())
	assert.True(t, PostPolicy.Creatable())
}
