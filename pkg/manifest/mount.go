package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// MethodParam is the reserved trailing path variable that selects the action
// name for non-safe verbs.
const MethodParam = "method"

// Mount binds one registered screen to a URL prefix.
type Mount struct {
	Path   string   `toml:"path"`
	Screen string   `toml:"screen"`
	Params []string `toml:"params"` // declared path variables, in order
	Guard  Guard    `toml:"guard"`
}

// Guard is the HTTP-boundary access declaration for a mount, evaluated with
// the same any-token-grants gate as the screen's own permission spec.
type Guard struct {
	Capabilities []string `toml:"capabilities"`
	RequireAuth  bool     `toml:"require_auth"`
}

func (m *Mount) normalize() error {
	if m.Path == "" {
		return errors.New("path is required")
	}
	// Path is a static prefix; declared variables come from Params and are
	// appended as segments when routes are built.
	if strings.ContainsAny(m.Path, "{}*") {
		return fmt.Errorf("path %q must be static; declare variables via params", m.Path)
	}
	if !strings.HasPrefix(m.Path, "/") {
		m.Path = "/" + m.Path
	}
	if m.Path != "/" {
		m.Path = path.Clean(m.Path)
	}
	m.Screen = strings.TrimSpace(m.Screen)
	// The trailing method slot is always declared, even when the mount
	// lists no variables of its own.
	if len(m.Params) == 0 || m.Params[len(m.Params)-1] != MethodParam {
		m.Params = append(m.Params, MethodParam)
	}
	return nil
}

func (m *Mount) validate() error {
	if m.Screen == "" {
		return errors.New("screen is required")
	}
	seen := map[string]struct{}{}
	for _, p := range m.Params {
		p = strings.TrimSpace(p)
		if p == "" {
			return errors.New("empty path variable name")
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("duplicate path variable %q", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func (c *Config) validateMounts() error {
	if len(c.Mounts) == 0 {
		return errors.New("at least one mount required")
	}
	paths := map[string]struct{}{}
	for i := range c.Mounts {
		if err := c.Mounts[i].normalize(); err != nil {
			return fmt.Errorf("mount %d: %w", i, err)
		}
		if err := c.Mounts[i].validate(); err != nil {
			return fmt.Errorf("mount %d (%s): %w", i, c.Mounts[i].Path, err)
		}
		if _, dup := paths[c.Mounts[i].Path]; dup {
			return fmt.Errorf("mount %d: duplicate path %q", i, c.Mounts[i].Path)
		}
		paths[c.Mounts[i].Path] = struct{}{}
	}
	return nil
}
