package projectconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Depths is the list of search depths to benchmark. In YAML it may be
// written as a single depth (3), an inclusive range ("1-8"), a list
// ([1, 2, 5]) or a {min, max} mapping.
type Depths []int

// DepthRange returns every depth from lo to hi inclusive.
func DepthRange(lo, hi int) Depths {
	var d Depths
	for i := lo; i <= hi; i++ {
		d = append(d, i)
	}
	return d
}

// String renders contiguous depths as "lo-hi" and anything else as a
// comma-separated list.
func (d Depths) String() string {
	if lo, hi, ok := d.contiguous(); ok {
		if lo == hi {
			return strconv.Itoa(lo)
		}
		return fmt.Sprintf("%d-%d", lo, hi)
	}
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// MarshalYAML writes contiguous depths in their compact range form.
func (d Depths) MarshalYAML() (any, error) {
	if lo, hi, ok := d.contiguous(); ok && lo != hi {
		return fmt.Sprintf("%d-%d", lo, hi), nil
	}
	return []int(d), nil
}

func (d Depths) contiguous() (lo, hi int, ok bool) {
	if len(d) == 0 {
		return 0, 0, false
	}
	for i := 1; i < len(d); i++ {
		if d[i] != d[i-1]+1 {
			return 0, 0, false
		}
	}
	return d[0], d[len(d)-1], true
}

// ParseDepths parses "3", "1-8" or "1,2,5".
func ParseDepths(s string) (Depths, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty depth list")
	}
	if strings.Contains(s, ",") {
		var d Depths
		for _, part := range strings.Split(s, ",") {
			v, err := parseDepth(part)
			if err != nil {
				return nil, err
			}
			d = append(d, v)
		}
		return d, nil
	}
	if loStr, hiStr, ok := strings.Cut(s, "-"); ok {
		lo, err := parseDepth(loStr)
		if err != nil {
			return nil, err
		}
		hi, err := parseDepth(hiStr)
		if err != nil {
			return nil, err
		}
		return rangeChecked(lo, hi)
	}
	v, err := parseDepth(s)
	if err != nil {
		return nil, err
	}
	return Depths{v}, nil
}

func parseDepth(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("depth %q is not an integer", strings.TrimSpace(s))
	}
	if v < 1 {
		return 0, fmt.Errorf("depth must be positive, got %d", v)
	}
	return v, nil
}

func rangeChecked(lo, hi int) (Depths, error) {
	if lo < 1 {
		return nil, fmt.Errorf("depth must be positive, got %d", lo)
	}
	if hi < lo {
		return nil, fmt.Errorf("depth range %d-%d is empty", lo, hi)
	}
	return DepthRange(lo, hi), nil
}

// depthsHook lets mapstructure decode every accepted YAML form of Depths.
func depthsHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(Depths(nil))
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != target {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return ParseDepths(v)
		case int:
			return Depths{v}, nil
		case map[string]any:
			lo, err := intField(v, "min")
			if err != nil {
				return nil, err
			}
			hi, err := intField(v, "max")
			if err != nil {
				return nil, err
			}
			return rangeChecked(lo, hi)
		case []any:
			d := make(Depths, 0, len(v))
			for _, item := range v {
				n, ok := item.(int)
				if !ok {
					return nil, fmt.Errorf("depth %v is not an integer", item)
				}
				d = append(d, n)
			}
			return d, nil
		default:
			return data, nil
		}
	}
}

func intField(m map[string]any, key string) (int, error) {
	raw, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("depth range is missing %q", key)
	}
	v, ok := raw.(int)
	if !ok {
		return 0, fmt.Errorf("depth range %q must be an integer, got %v", key, raw)
	}
	return v, nil
}
