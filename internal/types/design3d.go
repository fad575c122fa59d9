package types

// Geometry is the rectangular massing box.
type Geometry struct {
	Vertices   [][3]float64 `json:"vertices"`
	Faces      [][4]int     `json:"faces"`
	Dimensions [3]float64   `json:"dimensions"`
}

// MaterialProperties are the render properties of one material.
type MaterialProperties struct {
	Roughness    float64    `json:"roughness"`
	Reflectivity float64    `json:"reflectivity"`
	Color        [3]float64 `json:"color"`
}

// Materials3D is the material palette of the model.
type Materials3D struct {
	Primary    string                        `json:"primary"`
	Secondary  string                        `json:"secondary"`
	Accent     string                        `json:"accent"`
	Properties map[string]MaterialProperties `json:"properties"`
}

type NaturalLighting struct {
	SolarGain   float64 `json:"solar_gain"`
	WindowArea  string  `json:"window_area"`
	Orientation string  `json:"orientation"`
}

// ArtificialLighting levels are in lux.
type ArtificialLighting struct {
	Ambient int `json:"ambient"`
	Task    int `json:"task"`
	Accent  int `json:"accent"`
}

type Lighting struct {
	Natural    NaturalLighting    `json:"natural"`
	Artificial ArtificialLighting `json:"artificial"`
	Control    string             `json:"control"`
}

type Vegetation struct {
	Trees  string `json:"trees"`
	Shrubs string `json:"shrubs"`
	Grass  string `json:"grass"`
}

type Hardscaping struct {
	Patio    string `json:"patio"`
	Walkways string `json:"walkways"`
}

type Landscaping struct {
	Vegetation    Vegetation  `json:"vegetation"`
	Hardscaping   Hardscaping `json:"hardscaping"`
	WaterFeatures string      `json:"water_features"`
}

// Textures are the surface finish parameters for the primary style.
type Textures struct {
	Roughness float64 `json:"roughness"`
	Bump      float64 `json:"bump"`
	Detail    string  `json:"detail"`
}

// Viewpoint is a fixed camera.
type Viewpoint struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Target   [3]float64 `json:"target"`
	FOV      float64    `json:"fov"`
}

// Model3D is the stored 3D artifact.
type Model3D struct {
	Geometry    Geometry    `json:"geometry"`
	Materials   Materials3D `json:"materials"`
	Lighting    Lighting    `json:"lighting"`
	Landscaping Landscaping `json:"landscaping"`
	Viewpoints  []Viewpoint `json:"viewpoints"`
	Textures    Textures    `json:"textures"`
}
