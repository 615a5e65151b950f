package scene

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is the part a named node plays in the simulation.
type Role int

const (
	RoleNone Role = iota
	RolePlayer
	RoleCollider
	RoleTarget
)

var roleNames = map[Role]string{
	RoleNone:     "none",
	RolePlayer:   "player",
	RoleCollider: "collider",
	RoleTarget:   "target",
}

// String returns the configuration name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole converts a configuration name to a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if strings.EqualFold(name, s) {
			return role, nil
		}
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// UnmarshalYAML decodes a role from its name.
func (r *Role) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// MarshalYAML encodes a role as its name.
func (r Role) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// Roles maps exact node names to roles.
type Roles map[string]Role

// DefaultRoles is the vocabulary of the portfolio scene.
func DefaultRoles() Roles {
	return Roles{
		"mouse":           RolePlayer,
		"ground_collider": RoleCollider,
		"aboutme":         RoleTarget,
		"projects":        RoleTarget,
		"hobbies":         RoleTarget,
	}
}

// TargetNames returns the names bound to RoleTarget, sorted.
func (r Roles) TargetNames() []string {
	var names []string
	for name, role := range r {
		if role == RoleTarget {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Bindings are the typed node references resolved from a scene graph.
type Bindings struct {
	Player   *Node
	Collider *Node
	Targets  []*Node // one node per target name

	// Duplicates lists target names that occurred more than once; only the
	// first occurrence is bound.
	Duplicates []string
}

// Resolve walks root once and binds nodes by exact name. When a player or
// collider name occurs more than once the last occurrence wins; a target
// name binds its first occurrence so picking and hover feedback always
// refer to the same node. Every mesh node is flagged to cast and receive
// shadows.
func (r Roles) Resolve(root *Node) Bindings {
	var b Bindings
	if root == nil {
		return b
	}
	seen := make(map[string]bool)
	root.Traverse(func(n *Node) {
		if n.Mesh != nil {
			n.CastShadow = true
			n.ReceiveShadow = true
		}
		switch r[n.Name] {
		case RolePlayer:
			b.Player = n
		case RoleCollider:
			b.Collider = n
		case RoleTarget:
			if seen[n.Name] {
				if !slices.Contains(b.Duplicates, n.Name) {
					b.Duplicates = append(b.Duplicates, n.Name)
				}
				return
			}
			seen[n.Name] = true
			b.Targets = append(b.Targets, n)
		}
	})
	return b
}
