// Package settings resolves the deployment settings of one environment
// profile for one target region.
//
// A properties document carries a global section ([cdk_settings]) and one
// optional section per region. Resolving merges the two, region values
// winning, and records the requested region under current_target_region.
//
// Error handling:
//
// Every failure in this package is a configuration problem and is fatal for
// the deployment pass that hit it. Nothing is retried: the same input always
// produces the same error. Callers can classify failures with errors.Is
// against ErrFileNotFound, ErrMissingSection, ErrMissingRequiredKeys,
// ErrRegionMismatch, ErrNoTargetRegions and ErrInvalidValue, or use
// errors.As to get the typed error with its details:
//
//	resolved, err := settings.Resolve(doc, settings.GlobalSection, region)
//	if err != nil {
//	    var missing *settings.MissingRequiredKeysError
//	    if errors.As(err, &missing) {
//	        logger.Error("incomplete profile", zap.Strings("keys", missing.Keys))
//	    }
//	    return err
//	}
//
// Resolved values are immutable and are passed explicitly to their
// consumers; there is no package-level "current configuration".
package settings
