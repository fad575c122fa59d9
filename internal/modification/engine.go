package modification

import (
	"errors"
	"fmt"

	"archiplan/internal/types"
)

const growthFactor = 1.1

// ErrArtifactMissing is returned when the targeted discipline has no design yet.
var ErrArtifactMissing = errors.New("modification: target artifact has not been generated")

// Apply mutates the artifact of mod.Type in place and returns it. Combinations
// with no defined mutation leave the artifact unchanged.
func Apply(designs *types.Designs, mod types.Modification) (any, error) {
	if !designs.Has(mod.Type) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, mod.Type)
	}

	switch mod.Type {
	case types.Discipline2D:
		apply2D(designs.Design2D, mod)
		return designs.Design2D, nil
	case types.Discipline3D:
		apply3D(designs.Design3D, mod)
		return designs.Design3D, nil
	case types.DisciplineStructural:
		applyStructural(designs.Structural, mod)
		return designs.Structural, nil
	case types.DisciplineMEP:
		applyMEP(designs.MEP, mod)
		return designs.MEP, nil
	}
	return nil, fmt.Errorf("modification: unknown discipline %q", mod.Type)
}

func apply2D(d *types.Design2D, mod types.Modification) {
	plan := &d.FloorPlan
	switch mod.Parameters.Element {
	case types.ElementRoom:
		switch mod.Action {
		case types.ActionAdd:
			plan.Rooms.Put(types.Room{
				Name:       fmt.Sprintf("new_room_%d", len(plan.Rooms)),
				Position:   [2]float64{0, 0},
				Dimensions: [2]float64{4, 4},
				Area:       16,
			})
		case types.ActionRemove:
			plan.Rooms.RemoveFirst()
		case types.ActionIncrease:
			for i := range plan.Rooms {
				r := &plan.Rooms[i]
				r.Dimensions[0] *= growthFactor
				r.Dimensions[1] *= growthFactor
				r.Area = r.Dimensions[0] * r.Dimensions[1]
			}
		}
	case types.ElementWindow:
		switch mod.Action {
		case types.ActionAdd:
			plan.Openings.Windows = append(plan.Openings.Windows, types.Opening{
				Type:     "window",
				Position: [2]float64{2, 2},
				Size:     [2]float64{1.5, 1.2},
				Style:    "modern",
			})
		case types.ActionRemove:
			if len(plan.Openings.Windows) > 0 {
				plan.Openings.Windows = plan.Openings.Windows[1:]
			}
		}
	}
}

func apply3D(m *types.Model3D, mod types.Modification) {
	if mod.Action != types.ActionIncrease {
		return
	}
	for i := range m.Geometry.Dimensions {
		m.Geometry.Dimensions[i] *= growthFactor
	}
}

func applyStructural(d *types.StructuralDesign, mod types.Modification) {
	if mod.Action != types.ActionIncrease {
		return
	}
	for _, beams := range [][]types.Beam{d.Frame.Beams, d.Roof.Beams} {
		for i := range beams {
			beams[i].Size *= growthFactor
			beams[i].Depth *= growthFactor
		}
	}
}

func applyMEP(d *types.MEPDesign, mod types.Modification) {
	if mod.Action != types.ActionAdd {
		return
	}
	d.Electrical.Outlets = append(d.Electrical.Outlets, types.Outlet{
		Type:     "standard",
		Position: [2]float64{2, 2},
		Rating:   "15A",
	})
}
