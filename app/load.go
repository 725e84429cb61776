package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/trufnetwork/idmz-gateway/internal/properties"
	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

type options struct {
	profile       string
	propertiesDir string
	properties    string
	region        string
	globalSection string

	fs     afero.Fs
	logger *zap.Logger
}

// loaded is the outcome of one resolution pass.
type loaded struct {
	profile string
	doc     *properties.Document
	regions *settings.RegionSet
}

func (o *options) profileName() (string, error) {
	if o.profile != "" {
		return o.profile, nil
	}
	return settings.ProfileFromEnv()
}

func (o *options) location(profile string) string {
	if o.properties != "" {
		return o.properties
	}
	return settings.PropertiesPath(o.propertiesDir, profile)
}

// load reads the profile document and resolves every requested region.
// Any failure aborts the whole pass.
func (o *options) load(ctx context.Context) (*loaded, error) {
	profile, err := o.profileName()
	if err != nil {
		return nil, err
	}

	src, err := properties.NewSource(o.location(profile), properties.WithFs(o.fs), properties.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	doc, err := properties.Load(ctx, src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load profile %s", profile)
	}

	regions := []string{o.region}
	if o.region == "" {
		if regions, err = settings.TargetRegions(doc, o.globalSection); err != nil {
			return nil, err
		}
	}

	resolver := settings.NewResolver(settings.WithGlobalSection(o.globalSection), settings.WithLogger(o.logger))
	set, err := resolver.ResolveAll(ctx, doc, regions)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("profile resolved",
		zap.String("profile", profile),
		zap.String("source", src.Name()),
		zap.Strings("regions", set.Regions()))
	return &loaded{profile: profile, doc: doc, regions: set}, nil
}
