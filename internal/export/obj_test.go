package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesh_AddBox(t *testing.T) {
	var m Mesh
	assert.True(t, m.IsEmpty())

	m.AddBox([3]float64{0, 0, 0}, [3]float64{1, 2, 3})
	m.AddBox([3]float64{5, 5, 0}, [3]float64{6, 6, 1})

	assert.Equal(t, 16, m.VertexCount())
	assert.Equal(t, 12, m.FaceCount())
	assert.Equal(t, [3]float64{1, 2, 3}, m.Vertices[6])
	// faces of the second box index into its own vertices
	assert.Equal(t, [4]int{8, 9, 10, 11}, m.Faces[6])
}

func TestMesh_WriteOBJ(t *testing.T) {
	m := Mesh{Comments: []string{"box"}}
	m.AddBox([3]float64{0, 0, 0}, [3]float64{1, 1, 1})

	var sb strings.Builder
	require.NoError(t, m.WriteOBJ(&sb))
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")

	require.Len(t, lines, 1+8+6)
	assert.Equal(t, "# box", lines[0])
	assert.Equal(t, "v 0.0000 0.0000 0.0000", lines[1])
	assert.Equal(t, "v 1.0000 1.0000 1.0000", lines[7])
	assert.Equal(t, "f 1 2 3 4", lines[9])
	assert.Equal(t, "f 4 1 5 8", lines[14])
}

func TestOBJ_BackKitchen(t *testing.T) {
	design := testDesign(t, "BACK_KITCHEN", "DFKW", "CDZM")

	out, err := OBJ(design)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Kitchen design generated by cabinetplan\n# Layout: BACK_KITCHEN\n# Door: DFKW  Top: CDZM\n"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 14*8, strings.Count(out, "\nv "))
	assert.Equal(t, 14*6, strings.Count(out, "\nf "))
	// show:CAFI-1 sits at x 200 and is 2123 tall
	assert.Contains(t, out, "v 0.2000 0.0000 0.0000\n")
	assert.Contains(t, out, "v 0.8000 0.5950 2.1230\n")
}

func TestDesignMesh_Empty(t *testing.T) {
	design := testDesign(t, "BROKEN_PLAN", "DFKW", "CDZM")
	for i := range design.Rooms {
		design.Rooms[i].Placements = nil
	}
	m, err := DesignMesh(design)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
	assert.Len(t, m.Comments, 3)
}
