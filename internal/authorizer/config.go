package authorizer

import (
	"context"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Config is the authorizer's cold start configuration.
type Config struct {
	// DNs contain commas, so DN lists are separated by semicolons.
	Issuers   []string `env:"AUTHZ_ALLOWED_ISSUERS" envSeparator:";"`
	Subjects  []string `env:"AUTHZ_ALLOWED_SUBJECTS" envSeparator:";"`
	SourceIPs []string `env:"AUTHZ_ALLOWED_SOURCE_IPS" envSeparator:","`

	// AllowListParameter names an SSM parameter holding the allow list as
	// JSON. When set it replaces the lists above.
	AllowListParameter string `env:"AUTHZ_ALLOWLIST_PARAMETER"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse authorizer environment")
	}
	return cfg, nil
}

// LoadConfigFrom reads the configuration from an explicit environment.
func LoadConfigFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse authorizer environment")
	}
	return cfg, nil
}

// AllowList builds the allow list for cfg. With AllowListParameter set it is
// read through params; otherwise each unset list falls back to the compiled-in
// default. The result is validated, so a bad list fails cold start rather
// than a request.
func (cfg Config) AllowList(ctx context.Context, params *ParameterSource, logger *zap.Logger) (AllowList, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var allow AllowList
	if cfg.AllowListParameter != "" {
		if params == nil {
			return AllowList{}, errors.Errorf("allow list parameter %s configured without a parameter source", cfg.AllowListParameter)
		}
		fetched, err := params.Fetch(ctx, cfg.AllowListParameter)
		if err != nil {
			return AllowList{}, err
		}
		allow = fetched
		logger.Info("loaded allow list from parameter store", zap.String("parameter", cfg.AllowListParameter))
	} else {
		allow = NewAllowList(
			orDefault(cfg.Issuers, defaultIssuers),
			orDefault(cfg.Subjects, defaultSubjects),
			orDefault(cfg.SourceIPs, defaultSourceIPs),
		)
	}

	if err := allow.Validate(); err != nil {
		return AllowList{}, errors.Wrap(err, "invalid allow list")
	}
	logger.Info("allow list ready",
		zap.Int("issuers", len(allow.issuers)),
		zap.Int("subjects", len(allow.subjects)),
		zap.Int("source_ips", len(allow.sourceIPs)))
	return allow, nil
}

func orDefault(values, defaults []string) []string {
	cleaned := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	})
	if len(cleaned) == 0 {
		return defaults
	}
	return cleaned
}
