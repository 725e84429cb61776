package settings

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// DefaultProfile is used for develop, feature branches and unset environments.
const DefaultProfile = "develop"

// DefaultPropertiesDir is where profile files live relative to the repository root.
const DefaultPropertiesDir = "resources"

// profileBranches are the source branches that map directly to a profile.
var profileBranches = map[string]bool{
	"qa":   true,
	"live": true,
}

// ProfileEnvironment is the environment consulted when picking a profile.
type ProfileEnvironment struct {
	// explicit profile, wins over everything else
	Profile string `env:"CDK_ENV_PROFILE"`
	// branch that triggered the pipeline
	SourceBranch string `env:"SRC_BRANCH"`
}

// Name returns the environment profile: CDK_ENV_PROFILE when set, else
// SRC_BRANCH when it names a known profile, else develop.
func (e ProfileEnvironment) Name() string {
	if e.Profile != "" {
		return e.Profile
	}
	if profileBranches[e.SourceBranch] {
		return e.SourceBranch
	}
	return DefaultProfile
}

// ProfileFromEnv reads the process environment and returns the profile name.
func ProfileFromEnv() (string, error) {
	var pe ProfileEnvironment
	if err := env.Parse(&pe); err != nil {
		return "", errors.Wrap(err, "failed to parse profile environment")
	}
	return pe.Name(), nil
}

// ProfileFromMap is ProfileFromEnv over an explicit environment.
func ProfileFromMap(environment map[string]string) (string, error) {
	var pe ProfileEnvironment
	if err := env.ParseWithOptions(&pe, env.Options{Environment: environment}); err != nil {
		return "", errors.Wrap(err, "failed to parse profile environment")
	}
	return pe.Name(), nil
}

// PropertiesPath returns the properties file of profile inside dir.
func PropertiesPath(dir, profile string) string {
	return filepath.Join(dir, fmt.Sprintf("application.%s.properties", profile))
}
