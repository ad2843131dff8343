package permissions_test

import (
	"net/http"
	"testing"

	"hotel/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/rooms", Method: http.MethodPost, Permissions: []string{"admin"}},
			{Path: "/v1/bookings/{id}", Method: http.MethodDelete, Permissions: []string{"admin", "manager"}},
		},
	}

	tests := []struct {
		name   string
		path   string
		method string
		want   []string
	}{
		{name: "exact", path: "/v1/bookings/{id}", method: http.MethodDelete, want: []string{"admin", "manager"}},
		{name: "trailing slash", path: "/v1/rooms/", method: http.MethodPost, want: []string{"admin"}},
		{name: "subrouter wildcard", path: "/v1/rooms/*", method: http.MethodPost, want: []string{"admin"}},
		{name: "nested wildcard", path: "/v1/*/bookings/{id}", method: http.MethodDelete, want: []string{"admin", "manager"}},
		{name: "other method", path: "/v1/rooms", method: http.MethodGet},
		{name: "unknown path", path: "/v1/guests", method: http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.FindPermissions(tt.path, tt.method).Permissions)
		})
	}
}

func TestGet_StaffRoutesAreRestricted(t *testing.T) {
	data := permissions.Get()

	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/staff/", http.MethodPost).Permissions)
	assert.Equal(t, []string{"admin", "manager"}, data.FindPermissions("/v1/staff/", http.MethodGet).Permissions)
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/staff/{id}", http.MethodDelete).Permissions)
}
