package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Room is one named space of a floor plan.
type Room struct {
	Name        string     `json:"-"`
	Position    [2]float64 `json:"position"`
	Dimensions  [2]float64 `json:"dimensions"`
	Area        float64    `json:"area"`
	Insulation  string     `json:"insulation,omitempty"`
	Ventilation string     `json:"ventilation,omitempty"`
}

// Rooms is a name-keyed room collection that keeps insertion order.
// It encodes as a JSON object whose key order is the generation order.
type Rooms []Room

// Index returns the position of the named room, or -1.
func (rs Rooms) Index(name string) int {
	for i := range rs {
		if rs[i].Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a room with the given name exists.
func (rs Rooms) Has(name string) bool {
	return rs.Index(name) >= 0
}

// Put appends r, or replaces the existing room with the same name in place.
func (rs *Rooms) Put(r Room) {
	if i := rs.Index(r.Name); i >= 0 {
		(*rs)[i] = r
		return
	}
	*rs = append(*rs, r)
}

// RemoveFirst deletes the earliest inserted room. It reports false on an empty set.
func (rs *Rooms) RemoveFirst() bool {
	if len(*rs) == 0 {
		return false
	}
	*rs = append((*rs)[:0:0], (*rs)[1:]...)
	return true
}

// TotalArea sums the area of every room.
func (rs Rooms) TotalArea() float64 {
	var total float64
	for _, r := range rs {
		total += r.Area
	}
	return total
}

// MarshalJSON encodes the rooms as an ordered JSON object keyed by name.
func (rs Rooms) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by room name, preserving key order.
func (rs *Rooms) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*rs = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("rooms: expected object, got %v", tok)
	}
	out := Rooms{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("rooms: expected string key, got %v", tok)
		}
		var r Room
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("rooms: decode %q: %w", name, err)
		}
		r.Name = name
		out.Put(r)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*rs = out
	return nil
}

// Corridor is a straight circulation segment.
type Corridor struct {
	Start [2]float64 `json:"start"`
	End   [2]float64 `json:"end"`
	Width float64    `json:"width"`
}

// Door is a door placement within the circulation scheme.
type Door struct {
	Room     string     `json:"room"`
	Position [2]float64 `json:"position"`
	Width    float64    `json:"width"`
}

// Circulation groups corridors and door placements.
type Circulation struct {
	Corridors []Corridor `json:"corridors"`
	Doors     []Door     `json:"doors"`
}

// Opening is a window or door in a plan or an elevation.
type Opening struct {
	Type        string     `json:"type,omitempty"`
	Room        string     `json:"room,omitempty"`
	Position    [2]float64 `json:"position"`
	Size        [2]float64 `json:"size"`
	Orientation string     `json:"orientation,omitempty"`
	Style       string     `json:"style,omitempty"`
}

// Openings groups plan-level windows and doors.
type Openings struct {
	Windows []Opening `json:"windows"`
	Doors   []Opening `json:"doors"`
}

// StyleFeatures are the plan-level style qualities.
type StyleFeatures struct {
	Symmetry      string `json:"symmetry"`
	Proportions   string `json:"proportions"`
	Ornamentation string `json:"ornamentation"`
}

// FloorPlan is the 2D layout.
type FloorPlan struct {
	Rooms         Rooms          `json:"rooms"`
	Circulation   Circulation    `json:"circulation"`
	Openings      Openings       `json:"openings"`
	StyleFeatures *StyleFeatures `json:"style_features,omitempty"`
	Orientation   string         `json:"orientation"`
	// OccupancyType is carried from the requirements when set explicitly.
	OccupancyType Occupancy `json:"occupancy_type,omitempty"`
}

// Occupancy returns the explicit occupancy when set. Otherwise it is inferred
// from room names, checking office, retail, hospital and school in that order
// and defaulting to residential.
func (p FloorPlan) Occupancy() Occupancy {
	if p.OccupancyType != "" {
		return p.OccupancyType
	}
	names := make([]string, len(p.Rooms))
	for i, r := range p.Rooms {
		names[i] = strings.ToLower(r.Name)
	}
	joined := strings.Join(names, " ")
	for _, o := range []Occupancy{OccupancyOffice, OccupancyRetail, OccupancyHospital, OccupancySchool} {
		if strings.Contains(joined, string(o)) {
			return o
		}
	}
	return OccupancyResidential
}

// Elevation is one exterior face.
type Elevation struct {
	Height    float64   `json:"height"`
	Style     StyleName `json:"style"`
	Materials []string  `json:"materials"`
	Openings  []Opening `json:"openings"`
}

// Elevations holds the front and side faces.
type Elevations struct {
	Front Elevation `json:"front"`
	Side  Elevation `json:"side"`
}

// Section is a cut through the building.
type Section struct {
	Height     float64 `json:"height"`
	Structure  string  `json:"structure"`
	Insulation string  `json:"insulation"`
	Roof       string  `json:"roof"`
}

// Sections holds the longitudinal and transverse cuts.
type Sections struct {
	Longitudinal Section `json:"longitudinal"`
	Transverse   Section `json:"transverse"`
}

// DesignParameters echoes the inputs a 2D design was generated from.
type DesignParameters struct {
	ProjectType           ProjectType                  `json:"project_type"`
	SurfaceArea           float64                      `json:"surface_area"`
	Style                 StyleName                    `json:"style"`
	ClimateConsiderations ArchitecturalRecommendations `json:"climate_considerations"`
}

// Design2D is the stored 2D artifact.
type Design2D struct {
	FloorPlan        FloorPlan        `json:"floor_plan"`
	Elevations       Elevations       `json:"elevations"`
	Sections         Sections         `json:"sections"`
	DesignParameters DesignParameters `json:"design_parameters"`
}
