// Package properties loads the INI-style environment profile documents
// (resources/application.<profile>.properties) used by the deployment tooling.
package properties

import (
	"github.com/samber/lo"
)

// Document is a parsed properties file: sections in file order, each holding
// its key/value pairs. A Document is never modified after parsing.
type Document struct {
	order    []string
	sections map[string]map[string]string
	source   string
}

// NewDocument creates a Document from already-split sections. The order of
// sectionOrder is preserved; sections missing from sectionOrder are appended
// in no particular order. Input maps are copied.
func NewDocument(sectionOrder []string, sections map[string]map[string]string) *Document {
	doc := &Document{sections: make(map[string]map[string]string, len(sections))}
	for _, name := range sectionOrder {
		if values, ok := sections[name]; ok {
			doc.add(name, values)
		}
	}
	for name, values := range sections {
		if _, seen := doc.sections[name]; !seen {
			doc.add(name, values)
		}
	}
	return doc
}

func (d *Document) add(name string, values map[string]string) {
	if _, exists := d.sections[name]; !exists {
		d.order = append(d.order, name)
		d.sections[name] = make(map[string]string, len(values))
	}
	for k, v := range values {
		d.sections[name][k] = v
	}
}

// Source returns the name of the source the document was read from, if any.
func (d *Document) Source() string {
	return d.source
}

// Sections returns the section names in the order they first appeared.
func (d *Document) Sections() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Has reports whether the document contains the named section. An empty
// section (header only) still counts as present.
func (d *Document) Has(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// Section returns a copy of the named section's key/value pairs.
func (d *Document) Section(name string) (map[string]string, bool) {
	values, ok := d.sections[name]
	if !ok {
		return nil, false
	}
	return lo.Assign(values), true
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.order)
}

// IsEmpty reports whether the document holds no sections at all.
func (d *Document) IsEmpty() bool {
	return len(d.order) == 0
}
