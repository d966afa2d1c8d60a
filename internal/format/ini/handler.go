// Package ini provides the INI format handler for fil.
package ini

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/ini.v1"

	"github.com/thirteen37/fil/internal/format"
)

// Handler implements format.Handler for INI files.
//
// Documents decode to a two-level mapping: {"section": {"key": "value"}}.
// Keys outside any section live under the empty section name "". All INI
// values are strings.
type Handler struct{}

// New creates a new INI handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "ini" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".ini"} }

// LineOriented reports false; an INI file holds a single document.
func (h *Handler) LineOriented() bool { return false }

// Decode parses INI bytes into the two-level mapping.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	if opts.Ordered {
		result := orderedmap.New()
		for _, section := range cfg.Sections() {
			name := sectionName(section)
			sectionMap := orderedmap.New()
			for _, key := range section.Keys() {
				sectionMap.Set(key.Name(), key.Value())
			}
			// Only add the global section if it has keys
			if len(sectionMap.Keys()) > 0 || name != "" {
				result.Set(name, sectionMap)
			}
		}
		return result, nil
	}

	result := make(map[string]any)
	for _, section := range cfg.Sections() {
		name := sectionName(section)
		sectionMap := make(map[string]any)
		for _, key := range section.Keys() {
			sectionMap[key.Name()] = key.Value()
		}
		if len(sectionMap) > 0 || name != "" {
			result[name] = sectionMap
		}
	}
	return result, nil
}

// sectionName maps ini.v1's "DEFAULT" global section to fil's "".
func sectionName(section *ini.Section) string {
	if section.Name() == ini.DefaultSection {
		return ""
	}
	return section.Name()
}

// Encode writes a mapping to INI bytes. Top-level map values become
// sections; top-level scalars become keys in the global section. A
// non-mapping top level is rejected with format.ErrUnsupportedShape.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	om, ok := asMap(v)
	if !ok {
		return nil, fmt.Errorf("%w: .ini files only accept a map of sections, got %T", format.ErrUnsupportedShape, v)
	}

	cfg := ini.Empty()

	for _, name := range om.Keys() {
		val, _ := om.Get(name)
		sectionMap, ok := asMap(val)
		if !ok {
			// Scalar at the top level: a key in the global section
			if _, err := cfg.Section(ini.DefaultSection).NewKey(name, toString(val)); err != nil {
				return nil, fmt.Errorf("failed to create key %q: %w", name, err)
			}
			continue
		}

		section, err := getSection(cfg, name)
		if err != nil {
			return nil, err
		}
		for _, keyName := range sectionMap.Keys() {
			keyVal, _ := sectionMap.Get(keyName)
			if _, err := section.NewKey(keyName, toString(keyVal)); err != nil {
				return nil, fmt.Errorf("failed to create key %q: %w", keyName, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// getSection returns the named section, creating it when needed. The empty
// name addresses the global section.
func getSection(cfg *ini.File, name string) (*ini.Section, error) {
	if name == "" {
		return cfg.Section(ini.DefaultSection), nil
	}
	section, err := cfg.NewSection(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create section %q: %w", name, err)
	}
	return section, nil
}

// asMap normalizes a map-like value to an OrderedMap for stable traversal.
// OrderedMaps keep their order; plain maps get sorted keys.
func asMap(v any) (*orderedmap.OrderedMap, bool) {
	if om := format.ToOrderedMapPtr(v); om != nil {
		return om, true
	}
	switch m := v.(type) {
	case map[string]any:
		om := orderedmap.New()
		for _, k := range slices.Sorted(maps.Keys(m)) {
			om.Set(k, m[k])
		}
		return om, true
	case map[string]string:
		om := orderedmap.New()
		for _, k := range slices.Sorted(maps.Keys(m)) {
			om.Set(k, m[k])
		}
		return om, true
	default:
		return nil, false
	}
}

// toString converts any value to its string representation.
// INI files only support string values.
func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
