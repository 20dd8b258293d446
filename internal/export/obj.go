package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// Mesh is a quad mesh in metres built from boxes: every AddBox call
// contributes 8 vertices and 6 faces. Face indices are 0-based into
// Vertices; WriteOBJ converts them to the 1-based form OBJ expects.
type Mesh struct {
	Comments []string
	Vertices [][3]float64
	Faces    [][4]int
}

// boxFaces lists the six quads of a box, bottom then top then the four sides.
var boxFaces = [6][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

// AddBox appends an axis-aligned cuboid spanning min to max.
func (m *Mesh) AddBox(min, max [3]float64) {
	base := len(m.Vertices)
	x1, y1, z1 := min[0], min[1], min[2]
	x2, y2, z2 := max[0], max[1], max[2]
	m.Vertices = append(m.Vertices,
		[3]float64{x1, y1, z1},
		[3]float64{x2, y1, z1},
		[3]float64{x2, y2, z1},
		[3]float64{x1, y2, z1},
		[3]float64{x1, y1, z2},
		[3]float64{x2, y1, z2},
		[3]float64{x2, y2, z2},
		[3]float64{x1, y2, z2},
	)
	for _, f := range boxFaces {
		m.Faces = append(m.Faces, [4]int{base + f[0], base + f[1], base + f[2], base + f[3]})
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of quads.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// WriteOBJ writes comments, then each box's vertices with four decimals
// followed by its faces, ending with a newline.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, c := range m.Comments {
		fmt.Fprintf(bw, "# %s\n", c)
	}
	for box := 0; box*8 < len(m.Vertices); box++ {
		for _, v := range m.Vertices[box*8 : box*8+8] {
			fmt.Fprintf(bw, "v %.4f %.4f %.4f\n", v[0], v[1], v[2])
		}
		for _, f := range m.Faces[box*6 : box*6+6] {
			fmt.Fprintf(bw, "f %d %d %d %d\n", f[0]+1, f[1]+1, f[2]+1, f[3]+1)
		}
	}
	return bw.Flush()
}

// DesignMesh builds one cuboid per placement, in design order, sized to
// catalog geometry and converted from millimetres to metres. Boxes stand on
// the floor plane.
func DesignMesh(design model.Design) (*Mesh, error) {
	m := &Mesh{Comments: []string{
		"Kitchen design generated by cabinetplan",
		"Layout: " + string(design.Layout),
		fmt.Sprintf("Door: %s  Top: %s", design.Door, design.Top),
	}}
	for _, p := range design.Placements() {
		spec, err := model.LookupModule(p.ModuleID)
		if err != nil {
			return nil, err
		}
		m.AddBox(
			[3]float64{p.X / 1000, p.Y / 1000, 0},
			[3]float64{(p.X + spec.Width) / 1000, (p.Y + spec.Depth) / 1000, spec.Height / 1000},
		)
	}
	return m, nil
}

// OBJ renders design as Wavefront OBJ text.
func OBJ(design model.Design) (string, error) {
	m, err := DesignMesh(design)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := m.WriteOBJ(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
