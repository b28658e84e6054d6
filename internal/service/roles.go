package service

import (
	"encoding/json"
	"fmt"
	"os"

	"ordercrm/internal/model"
)

// Directory is the identity-to-role lookup. Assignments are loaded once
// at startup from a JSON file ({"<uid>": "<role>"}) and stay fixed for
// the process lifetime.
type Directory struct {
	roles map[string]model.Role
}

func NewDirectory(roles map[string]model.Role) *Directory {
	return &Directory{roles: roles}
}

func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roles file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse roles file: %w", err)
	}

	roles := make(map[string]model.Role, len(raw))
	for uid, name := range raw {
		role := model.Role(name)
		switch role {
		case model.RoleManager, model.RolePicker, model.RoleCourier, model.RoleAdmin:
			roles[uid] = role
		default:
			return nil, fmt.Errorf("unknown role %q for uid %s", name, uid)
		}
	}
	return &Directory{roles: roles}, nil
}

// RoleFor returns the role assigned to uid, or RoleNone.
func (d *Directory) RoleFor(uid string) model.Role {
	return d.roles[uid]
}
