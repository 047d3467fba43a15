// campus-crm/models/permission_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctPermissions(t *testing.T) {
	feesView := Permission{ID: 1, Name: "fees_view"}
	feesManage := Permission{ID: 2, Name: "fees_manage"}
	studentsManage := Permission{ID: 3, Name: "students_manage"}

	roles := []Role{
		{ID: 1, Name: "accountant", Permissions: []Permission{feesView, feesManage}},
		{ID: 2, Name: "registrar", Permissions: []Permission{feesView, studentsManage}},
	}

	permissions := DistinctPermissions(roles)
	assert.Len(t, permissions, 3)

	names := make(map[string]bool)
	for _, permission := range permissions {
		names[permission.Name] = true
	}
	assert.True(t, names["fees_view"])
	assert.True(t, names["fees_manage"])
	assert.True(t, names["students_manage"])
}

func TestDistinctPermissionsEmpty(t *testing.T) {
	assert.Empty(t, DistinctPermissions(nil))
	assert.Empty(t, DistinctPermissions([]Role{{ID: 1, Name: "bare"}}))
}
