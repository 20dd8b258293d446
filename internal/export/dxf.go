package export

import (
	"fmt"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names used by ExportDXF.
const (
	LayerRooms    = "ROOMS"
	LayerCabinets = "CABINETS"
	LayerOptional = "OPTIONAL"
	LayerLabels   = "LABELS"
)

const (
	dxfLabelHeight = 80.0
	dxfTitleHeight = 150.0
)

// ExportDXF writes a 2D plan of design for CAD tools. Rooms are drawn as
// closed outlines, each placement as a closed rectangle with its module id
// as a TEXT entity at the rectangle centre. Plan Y grows downwards, so Y is
// negated to keep the drawing the same way up as the SVG plan.
func ExportDXF(path string, design model.Design) error {
	if design.PlacementCount() == 0 {
		return fmt.Errorf("no placements to draw")
	}

	d := dxf.NewDrawing()
	for _, l := range []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerRooms, color.White},
		{LayerCabinets, color.Cyan},
		{LayerOptional, color.Yellow},
		{LayerLabels, color.Green},
	} {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerRooms); err != nil {
		return err
	}
	for _, room := range design.Rooms {
		if room.Width <= 0 || room.Depth <= 0 {
			continue
		}
		if _, err := d.LwPolyline(true, rectVertices(room.Origin.X, room.Origin.Y, room.Width, room.Depth)...); err != nil {
			return fmt.Errorf("failed to draw room %s: %w", room.ID, err)
		}
	}

	for _, p := range design.Placements() {
		layer := LayerCabinets
		if p.Optional {
			layer = LayerOptional
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		if _, err := d.LwPolyline(true, rectVertices(p.X, p.Y, p.Width, p.Depth)...); err != nil {
			return fmt.Errorf("failed to draw placement %s: %w", p.Key, err)
		}

		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		cx := p.X + p.Width/2 - dxfLabelHeight
		cy := -(p.Y + p.Depth/2)
		if _, err := d.Text(string(p.ModuleID), cx, cy, 0, dxfLabelHeight); err != nil {
			return fmt.Errorf("failed to label placement %s: %w", p.Key, err)
		}
	}

	bounds := PlanBounds(design)
	title := fmt.Sprintf("%s / Door %s / Top %s", design.Name, design.Door, design.Top)
	if _, err := d.Text(title, bounds.MinX, -(bounds.MaxY + 2*dxfTitleHeight), 0, dxfTitleHeight); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func rectVertices(x, y, w, h float64) [][]float64 {
	return [][]float64{
		{x, -y},
		{x + w, -y},
		{x + w, -(y + h)},
		{x, -(y + h)},
	}
}
