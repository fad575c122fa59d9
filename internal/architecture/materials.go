package architecture

import "archiplan/internal/types"

var materialProperties = map[string]types.MaterialProperties{
	"concrete": {Roughness: 0.6, Reflectivity: 0.2, Color: [3]float64{0.8, 0.8, 0.8}},
	"glass":    {Roughness: 0.1, Reflectivity: 0.9, Color: [3]float64{0.9, 0.9, 1.0}},
	"brick":    {Roughness: 0.8, Reflectivity: 0.1, Color: [3]float64{0.7, 0.4, 0.3}},
	"wood":     {Roughness: 0.7, Reflectivity: 0.1, Color: [3]float64{0.6, 0.4, 0.2}},
}

var neutralMaterial = types.MaterialProperties{Roughness: 0.5, Reflectivity: 0.3, Color: [3]float64{0.8, 0.8, 0.8}}

// MaterialProperties returns the render properties of a material, or a
// neutral default for materials without an entry.
func MaterialProperties(material string) types.MaterialProperties {
	if p, ok := materialProperties[material]; ok {
		return p
	}
	return neutralMaterial
}

// Palette merges the style materials with climate-recommended materials,
// keeping the first occurrence of each. Primary, secondary and accent are
// the first three entries; missing slots repeat the primary.
func Palette(style types.StyleName, climateMaterials []string) types.Materials3D {
	combined := make([]string, 0, 8)
	seen := make(map[string]struct{})
	for _, m := range append(StyleMaterials(style), climateMaterials...) {
		if _, ok := seen[m]; ok || m == "" {
			continue
		}
		seen[m] = struct{}{}
		combined = append(combined, m)
	}

	primary := "concrete"
	if len(combined) > 0 {
		primary = combined[0]
	}
	secondary, accent := primary, primary
	if len(combined) > 1 {
		secondary = combined[1]
	}
	if len(combined) > 2 {
		accent = combined[2]
	}

	props := make(map[string]types.MaterialProperties, len(combined))
	for _, m := range combined {
		props[m] = MaterialProperties(m)
	}
	return types.Materials3D{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Properties: props,
	}
}
