package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercrm/internal/model"
)

func writeRolesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDirectory(t *testing.T) {
	path := writeRolesFile(t, `{
		"379185153": "admin",
		"234567890": "manager",
		"345678901": "picker",
		"456789012": "courier"
	}`)

	dir, err := LoadDirectory(path)
	require.NoError(t, err)

	assert.Equal(t, model.RoleAdmin, dir.RoleFor("379185153"))
	assert.Equal(t, model.RoleManager, dir.RoleFor("234567890"))
	assert.Equal(t, model.RolePicker, dir.RoleFor("345678901"))
	assert.Equal(t, model.RoleCourier, dir.RoleFor("456789012"))
	assert.Equal(t, model.RoleNone, dir.RoleFor("000000000"))
}

func TestLoadDirectoryRejectsUnknownRole(t *testing.T) {
	path := writeRolesFile(t, `{"1": "superuser"}`)

	_, err := LoadDirectory(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown role")
}

func TestLoadDirectoryMissingFile(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
