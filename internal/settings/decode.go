package settings

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report properties keys instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Decode converts a resolved configuration into its typed form, applying
// defaults for unset optional keys. Empty values count as unset. A value
// that does not parse as its declared type, or fails a format check, yields
// an error matching ErrInvalidValue.
func Decode(r *Resolved) (*Deployment, error) {
	out := defaultDeployment()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: typedValueHook,
		Result:     &out,
		TagName:    "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create settings decoder")
	}

	input := lo.OmitByValues(r.Map(), []string{""})
	if err := decoder.Decode(input); err != nil {
		return nil, errors.Wrapf(ErrInvalidValue, "region %s: %v", r.Region(), err)
	}

	if out.Bootstrap.Qualifier == "" {
		out.Bootstrap.Qualifier = out.Bootstrap.LegacyQualifier
	}

	if err := validate.Struct(&out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, errors.Wrap(err, "settings validation failed")
		}
		return nil, toInvalidValueErrors(r, verrs)
	}
	return &out, nil
}

func toInvalidValueErrors(r *Resolved, verrs validator.ValidationErrors) error {
	var combined error
	for _, fe := range verrs {
		reason := fe.Tag()
		if fe.Param() != "" {
			reason = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		combined = multierr.Append(combined, &InvalidValueError{
			Key:    fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Reason: "failed check " + reason,
		})
	}
	return errors.Wrapf(combined, "region %s", r.Region())
}

// typedValueHook converts raw properties strings into the field's declared
// type. Unknown target kinds pass through unchanged.
func typedValueHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))

	switch to.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a boolean", raw)
		}
		return b, nil
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as an integer", raw)
		}
		return n, nil
	case reflect.Slice:
		if to.Elem().Kind() != reflect.String {
			return data, nil
		}
		return parseList(raw)
	default:
		return raw, nil
	}
}

// parseList accepts either a JSON array of strings or a comma separated list.
func parseList(raw string) ([]string, error) {
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("cannot parse %q as a JSON list of strings: %v", raw, err)
		}
		return list, nil
	}
	return lo.FilterMap(strings.Split(raw, ","), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	}), nil
}
