package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
)

type ownedResource struct {
	owner int64
}

func (r ownedResource) OwnerID() int64 { return r.owner }

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name     string
		identity auth.Identity
		owner    int64
		want     bool
	}{
		{
			name:     "Owner may mutate",
			identity: auth.Identity{ID: 1, Role: model.RoleStudent},
			owner:    1,
			want:     true,
		},
		{
			name:     "Stranger may not mutate",
			identity: auth.Identity{ID: 2, Role: model.RoleStudent},
			owner:    1,
			want:     false,
		},
		{
			name:     "Teacher gets no shortcut",
			identity: auth.Identity{ID: 2, Role: model.RoleTeacher},
			owner:    1,
			want:     false,
		},
		{
			name:     "Admin may mutate anything",
			identity: auth.Identity{ID: 2, Role: model.RoleAdmin},
			owner:    1,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := auth.CanMutate(tt.identity, ownedResource{owner: tt.owner})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizeMutation(t *testing.T) {
	owner := auth.Identity{ID: 1, Role: model.RoleStudent}
	stranger := auth.Identity{ID: 2, Role: model.RoleStudent}
	resource := ownedResource{owner: 1}

	assert.NoError(t, auth.AuthorizeMutation(owner, resource))
	assert.ErrorIs(t, auth.AuthorizeMutation(stranger, resource), auth.ErrForbidden)
}
