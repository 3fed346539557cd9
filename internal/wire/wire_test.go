package wire

import (
	"testing"

	"github.com/abelorian/lucid/internal/config"
)

func TestChildEnvPassesConfigFile(t *testing.T) {
	env := childEnv(&config.Config{File: "/srv/app/lucid.yaml"})
	if got := env[config.PathEnv]; got != "/srv/app/lucid.yaml" {
		t.Errorf("%s = %q, want %q", config.PathEnv, got, "/srv/app/lucid.yaml")
	}
}

func TestChildEnvWithoutConfigFile(t *testing.T) {
	env := childEnv(&config.Config{})
	if _, ok := env[config.PathEnv]; ok {
		t.Errorf("%s set without a config file: %v", config.PathEnv, env)
	}
}
