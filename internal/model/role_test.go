package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classlog/classlog/internal/model"
)

func TestRoleIsValid(t *testing.T) {
	tests := []struct {
		role model.Role
		want bool
	}{
		{model.RoleStudent, true},
		{model.RoleTeacher, true},
		{model.RoleAdmin, true},
		{model.Role("superuser"), false},
		{model.Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsValid())
		})
	}
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, model.RoleAdmin.IsAdmin())
	assert.False(t, model.RoleTeacher.IsAdmin())
	assert.False(t, model.RoleStudent.IsAdmin())
}

func TestParseRole(t *testing.T) {
	role, ok := model.ParseRole("teacher")
	assert.True(t, ok)
	assert.Equal(t, model.RoleTeacher, role)

	_, ok = model.ParseRole("superuser")
	assert.False(t, ok)
}
