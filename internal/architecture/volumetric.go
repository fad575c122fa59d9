package architecture

import (
	"math"
	"strings"

	"archiplan/internal/types"
)

var boxFaces = [][4]int{
	{0, 1, 2, 3}, // bottom
	{4, 5, 6, 7}, // top
	{0, 1, 5, 4}, // front
	{2, 3, 7, 6}, // back
	{0, 3, 7, 4}, // left
	{1, 2, 6, 5}, // right
}

// SynthesizeVolumetric builds the 3D model. It reads the same inputs as the
// floor plan and does not depend on it.
func SynthesizeVolumetric(req types.ProjectRequirements, climate types.ClimateProfile, style types.StyleProfile) *types.Model3D {
	primary := primaryStyle(style)
	return &types.Model3D{
		Geometry:    BuildingGeometry(req),
		Materials:   Palette(primary, climate.Recommendations.Materials),
		Lighting:    lighting(climate, primary),
		Landscaping: landscaping(climate.Recommendations),
		Viewpoints:  viewpoints(),
		Textures:    textures(primary),
	}
}

// BuildingGeometry is a box whose footprint keeps the 1.2 aspect ratio.
func BuildingGeometry(req types.ProjectRequirements) types.Geometry {
	var w, d float64
	if req.SurfaceArea > 0 {
		w = math.Sqrt(req.SurfaceArea * aspectRatio)
		d = req.SurfaceArea / w
	}
	h := 4.5
	if req.Type == types.ProjectResidential {
		h = storeyHeight
	}
	return types.Geometry{
		Vertices: [][3]float64{
			{0, 0, 0}, {w, 0, 0}, {w, d, 0}, {0, d, 0},
			{0, 0, h}, {w, 0, h}, {w, d, h}, {0, d, h},
		},
		Faces:      append([][4]int(nil), boxFaces...),
		Dimensions: [3]float64{w, d, h},
	}
}

func lighting(climate types.ClimateProfile, style types.StyleName) types.Lighting {
	solar, ok := types.MonthlyMean(climate.HistoricalData.SolarIrradiance)
	if !ok {
		solar = 1000
	}
	windowArea := "standard"
	if solar > 1000 {
		windowArea = "large"
	}
	orientation := "north"
	if solar > 800 {
		orientation = "south"
	}
	control := "standard"
	if style == types.StyleContemporary {
		control = "smart"
	}
	return types.Lighting{
		Natural: types.NaturalLighting{
			SolarGain:   solar,
			WindowArea:  windowArea,
			Orientation: orientation,
		},
		Artificial: types.ArtificialLighting{Ambient: 300, Task: 500, Accent: 200},
		Control:    control,
	}
}

// landscaping matches keywords case-sensitively against all recommendations.
func landscaping(recs types.ArchitecturalRecommendations) types.Landscaping {
	text := recs.Text()
	pick := func(keyword, yes, no string) string {
		if strings.Contains(text, keyword) {
			return yes
		}
		return no
	}
	return types.Landscaping{
		Vegetation: types.Vegetation{
			Trees:  pick("native", "native", "ornamental"),
			Shrubs: pick("drought", "drought_tolerant", "standard"),
			Grass:  pick("native", "native", "turf"),
		},
		Hardscaping: types.Hardscaping{
			Patio:    pick("permeable", "permeable", "concrete"),
			Walkways: pick("natural", "natural", "paved"),
		},
		WaterFeatures: pick("rainwater", "rainwater_harvesting", "none"),
	}
}

var styleTextures = map[types.StyleName]types.Textures{
	types.StyleTraditional:  {Roughness: 0.8, Bump: 0.3, Detail: "high"},
	types.StyleModern:       {Roughness: 0.3, Bump: 0.1, Detail: "low"},
	types.StyleContemporary: {Roughness: 0.5, Bump: 0.2, Detail: "medium"},
}

func textures(style types.StyleName) types.Textures {
	if t, ok := styleTextures[style]; ok {
		return t
	}
	return styleTextures[types.StyleModern]
}

func viewpoints() []types.Viewpoint {
	return []types.Viewpoint{
		{Name: "Front View", Position: [3]float64{0, -10, 2}, Target: [3]float64{0, 0, 2}, FOV: 60},
		{Name: "Side View", Position: [3]float64{-10, 0, 2}, Target: [3]float64{0, 0, 2}, FOV: 60},
		{Name: "Aerial View", Position: [3]float64{0, 0, 20}, Target: [3]float64{0, 0, 0}, FOV: 45},
		{Name: "Interior View", Position: [3]float64{5, 5, 1.5}, Target: [3]float64{10, 10, 1.5}, FOV: 75},
	}
}
