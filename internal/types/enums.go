package types

// ProjectType is the top-level building category of a project.
type ProjectType string

const (
	ProjectResidential   ProjectType = "residential"
	ProjectCommercial    ProjectType = "commercial"
	ProjectInstitutional ProjectType = "institutional"
	ProjectIndustrial    ProjectType = "industrial"
)

// Discipline identifies one of the independent design artifacts of a project.
type Discipline string

const (
	Discipline2D         Discipline = "2d"
	Discipline3D         Discipline = "3d"
	DisciplineStructural Discipline = "structural"
	DisciplineMEP        Discipline = "mep"
)

// Disciplines lists every discipline in generation order.
var Disciplines = []Discipline{Discipline2D, Discipline3D, DisciplineStructural, DisciplineMEP}

// Valid reports whether d is a known discipline.
func (d Discipline) Valid() bool {
	switch d {
	case Discipline2D, Discipline3D, DisciplineStructural, DisciplineMEP:
		return true
	}
	return false
}

// ProjectStatus is an advisory lifecycle label. It never gates an operation.
type ProjectStatus string

const (
	StatusCreated                  ProjectStatus = "created"
	Status2DDesignComplete         ProjectStatus = "2d_design_complete"
	Status3DDesignComplete         ProjectStatus = "3d_design_complete"
	StatusStructuralDesignComplete ProjectStatus = "structural_design_complete"
	StatusMEPDesignComplete        ProjectStatus = "mep_design_complete"
)

// CompletedStatus returns the status recorded after d has been generated.
func CompletedStatus(d Discipline) ProjectStatus {
	return ProjectStatus(string(d) + "_design_complete")
}

// ModifiedStatus returns the status recorded after d has been modified.
func ModifiedStatus(d Discipline) ProjectStatus {
	return ProjectStatus(string(d) + "_modified")
}

// Occupancy drives live loads, electrical densities and HVAC factors.
type Occupancy string

const (
	OccupancyResidential Occupancy = "residential"
	OccupancyOffice      Occupancy = "office"
	OccupancyRetail      Occupancy = "retail"
	OccupancyHospital    Occupancy = "hospital"
	OccupancySchool      Occupancy = "school"
)

// StyleName is the primary architectural style of a StyleProfile.
type StyleName string

const (
	StyleTraditional   StyleName = "Traditional"
	StyleModern        StyleName = "Modern"
	StyleContemporary  StyleName = "Contemporary"
	StyleMediterranean StyleName = "Mediterranean"
	StyleColonial      StyleName = "Colonial"
)

// StructuralSystem is the frame type selected from load intensity.
type StructuralSystem string

const (
	SystemWoodFrame     StructuralSystem = "wood_frame"
	SystemSteelFrame    StructuralSystem = "steel_frame"
	SystemConcreteFrame StructuralSystem = "concrete_frame"
)

// FoundationType is selected from the total structural load.
type FoundationType string

const (
	FoundationShallow FoundationType = "shallow"
	FoundationDeep    FoundationType = "deep"
	FoundationPile    FoundationType = "pile"
)

// Action is the verb of a parsed modification command.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionAdd      Action = "add"
	ActionRemove   Action = "remove"
	ActionChange   Action = "change"
	ActionModify   Action = "modify"
)

// Element is the design element a modification command targets.
type Element string

const (
	ElementRoom   Element = "room"
	ElementWindow Element = "window"
	ElementDoor   Element = "door"
	ElementWall   Element = "wall"
)
