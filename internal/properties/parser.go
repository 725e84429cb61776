package properties

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// loadOptions keeps keys and section names case sensitive and lets a repeated
// key overwrite the earlier value.
var loadOptions = ini.LoadOptions{
	Insensitive:  false,
	AllowShadows: false,
}

// Parse parses properties content. Empty or header-only content yields an
// empty (or key-less) document rather than an error.
//
// Every line is read on its own: text from the first '#' or ';' onward is a
// comment, surrounding whitespace is trimmed and so are any double quotes at
// either end of a value. Quoting never spans lines.
func Parse(data []byte) (*Document, error) {
	return parse(data, "")
}

func parse(data []byte, source string) (*Document, error) {
	cfg, err := readSections(data)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: %v", sourceLabel(source), err)
	}

	doc := &Document{
		sections: make(map[string]map[string]string),
		source:   source,
	}
	for _, sec := range cfg.Sections() {
		keys := sec.Keys()
		// ini always materialises DEFAULT; only keep it when something was
		// written before the first header.
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		values := make(map[string]string, len(keys))
		for _, key := range keys {
			values[key.Name()] = key.Value()
		}
		doc.add(sec.Name(), values)
	}
	return doc, nil
}

func readSections(data []byte) (*ini.File, error) {
	cfg := ini.Empty(loadOptions)
	sec := cfg.Section(ini.DefaultSection)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, errors.Errorf("line %d: unterminated section header %q", n, line)
			}
			var err error
			if sec, err = cfg.NewSection(strings.TrimSpace(line[1 : len(line)-1])); err != nil {
				return nil, errors.Wrapf(err, "line %d", n)
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf("line %d: key-value delimiter not found: %s", n, line)
		}
		if _, err := sec.NewKey(strings.TrimSpace(key), trimValue(value)); err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return cfg, nil
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// trimValue drops whitespace and any run of double quotes at either end, so
// `"a`, `a"` and `"""` come out as `a`, `a` and the empty string. Single quotes
// and backticks are kept.
func trimValue(value string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(value), `"`))
}

func sourceLabel(source string) string {
	if source == "" {
		return "properties"
	}
	return source
}
