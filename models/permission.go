// campus-crm/models/permission.go
package models

// Permission is a named right checked by PermissionMiddleware.
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"not null"` // grouping for the admin UI ("Students", "Fees", ...)
}

// DistinctPermissions flattens role grants into a unique permission set.
// A permission held through several roles appears once.
func DistinctPermissions(roles []Role) []Permission {
	seen := make(map[uint]Permission)
	for _, role := range roles {
		for _, permission := range role.Permissions {
			seen[permission.ID] = permission
		}
	}

	permissions := make([]Permission, 0, len(seen))
	for _, permission := range seen {
		permissions = append(permissions, permission)
	}
	return permissions
}