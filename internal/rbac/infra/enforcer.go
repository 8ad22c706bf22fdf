package infra

import (
	"os"
	"path/filepath"

	"github.com/casbin/casbin/v2"
)

// DefaultModelPath locates the casbin model shipped alongside the binary.
// CASBIN_MODEL_PATH overrides it for container layouts.
func DefaultModelPath() string {
	if p := os.Getenv("CASBIN_MODEL_PATH"); p != "" {
		return p
	}
	return filepath.Join("internal", "rbac", "infra", "model.conf")
}

func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
