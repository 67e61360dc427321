package content

// DefaultCollectionLayouts holds the backend-owned per-mode layout
// defaults. At resolution time the active mode's defaults are deep-merged
// with the collection block's explicit layout, explicit keys winning.
var DefaultCollectionLayouts = map[string]map[string]any{
	LayoutGrid: {
		"mode":    LayoutGrid,
		"columns": map[string]any{"xl": 5, "lg": 4, "md": 3, "sm": 2, "xs": 1},
		"gap":     map[string]any{"row": "1.5rem", "column": "1.5rem"},
		"align":   map[string]any{"horizontal": "stretch", "vertical": "start"},
	},
	LayoutList: {
		"mode":          LayoutList,
		"dense":         false,
		"show_dividers": true,
		"show_avatar":   true,
		"show_meta":     true,
		"align":         map[string]any{"vertical": "center"},
	},
	LayoutCarousel: {
		"mode":            LayoutCarousel,
		"slides_per_view": map[string]any{"xl": 5, "lg": 4, "md": 3, "sm": 2, "xs": 1},
		"spacing":         "1rem",
		"loop":            true,
		"autoplay":        map[string]any{"enabled": true, "interval_ms": 8000, "pause_on_hover": true},
		"controls":        map[string]any{"arrows": true, "dots": true},
		"snap_align":      "center",
		"max_width":       "100%",
	},
}

// mergedLayout resolves the effective layout for a collection: the active
// mode's defaults (falling back to grid for unknown modes) deep-merged with
// the explicit overrides.
func mergedLayout(overrides map[string]any) map[string]any {
	mode, _ := overrides["mode"].(string)
	defaults, ok := DefaultCollectionLayouts[mode]
	if !ok {
		defaults = DefaultCollectionLayouts[LayoutGrid]
	}
	return deepMerge(defaults, overrides)
}

// deepMerge merges b into a recursively, returning a new map. Nested maps
// merge key-by-key; any other value in b replaces the value in a. Neither
// input is mutated.
func deepMerge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = copyValue(v)
	}
	for k, v := range b {
		bm, bIsMap := v.(map[string]any)
		am, aIsMap := out[k].(map[string]any)
		if bIsMap && aIsMap {
			out[k] = deepMerge(am, bm)
			continue
		}
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies map values so merged results never alias the
// package-level defaults.
func copyValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, mv := range m {
		out[k] = copyValue(mv)
	}
	return out
}
