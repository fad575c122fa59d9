package types

import "time"

// Designs holds the four discipline artifacts. Each stays nil until generated.
type Designs struct {
	Design2D   *Design2D         `json:"2d"`
	Design3D   *Model3D          `json:"3d"`
	Structural *StructuralDesign `json:"structural"`
	MEP        *MEPDesign        `json:"mep"`
}

// Has reports whether the artifact for d has been generated.
func (d Designs) Has(disc Discipline) bool {
	switch disc {
	case Discipline2D:
		return d.Design2D != nil
	case Discipline3D:
		return d.Design3D != nil
	case DisciplineStructural:
		return d.Structural != nil
	case DisciplineMEP:
		return d.MEP != nil
	}
	return false
}

// Generated lists the disciplines that have an artifact, in generation order.
func (d Designs) Generated() []Discipline {
	var out []Discipline
	for _, disc := range Disciplines {
		if d.Has(disc) {
			out = append(out, disc)
		}
	}
	return out
}

// ModificationParameters is the element and optional dimensions parsed from a command.
type ModificationParameters struct {
	Element    Element     `json:"element,omitempty"`
	Dimensions *[2]float64 `json:"dimensions,omitempty"`
}

// Modification is a parsed modification command.
type Modification struct {
	Type       Discipline             `json:"type"`
	Command    string                 `json:"command"`
	Action     Action                 `json:"action"`
	Parameters ModificationParameters `json:"parameters"`
	AppliedAt  time.Time              `json:"applied_at"`
}

// ModificationLog is the ordered history of modifications applied to a project.
type ModificationLog []Modification

// ModificationResult is returned by ApplyModification.
type ModificationResult struct {
	ProjectID    string        `json:"project_id"`
	Discipline   Discipline    `json:"discipline"`
	Artifact     any           `json:"artifact"`
	Modification Modification  `json:"modification"`
	Status       ProjectStatus `json:"status"`
}

// Project is the stored aggregate: requirements, generated artifacts and status.
type Project struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Requirements  ProjectRequirements `json:"requirements"`
	Location      string              `json:"location,omitempty"`
	Portfolio     *Portfolio          `json:"portfolio,omitempty"`
	Status        ProjectStatus       `json:"status"`
	Designs       Designs             `json:"designs"`
	Modifications ModificationLog     `json:"modifications"`
	// Version is the optimistic concurrency token. Zero means never stored.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectSummary is the list view of a project.
type ProjectSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        ProjectType   `json:"type"`
	Status      ProjectStatus `json:"status"`
	Disciplines []Discipline  `json:"disciplines"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Summary builds the list view of p.
func (p *Project) Summary() ProjectSummary {
	disciplines := p.Designs.Generated()
	if disciplines == nil {
		disciplines = []Discipline{}
	}
	return ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Requirements.Type,
		Status:      p.Status,
		Disciplines: disciplines,
		UpdatedAt:   p.UpdatedAt,
	}
}
