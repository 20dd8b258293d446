package export

import (
	"fmt"
	"sort"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// Board is a stock carcass board that cutlist panels are nested onto.
type Board struct {
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Kerf   float64 `json:"kerf"`
}

// DefaultBoard returns the standard 2800 x 2070 mm carcass board with a
// 4 mm saw kerf.
func DefaultBoard() Board {
	return Board{Label: "Carcass board 2800x2070", Width: 2800, Height: 2070, Kerf: 4}
}

// Panel is a single cut panel expanded from a cutlist row.
type Panel struct {
	ModuleID  model.ModuleID `json:"moduleId"`
	Component Component      `json:"component"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
}

// Area returns the face area in mm².
func (p Panel) Area() float64 { return p.Width * p.Height }

// NestedPanel is a panel positioned on a board.
type NestedPanel struct {
	Panel   Panel   `json:"panel"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Rotated bool    `json:"rotated"`
}

// PlacedWidth returns the panel width as laid on the board.
func (n NestedPanel) PlacedWidth() float64 {
	if n.Rotated {
		return n.Panel.Height
	}
	return n.Panel.Width
}

// PlacedHeight returns the panel height as laid on the board.
func (n NestedPanel) PlacedHeight() float64 {
	if n.Rotated {
		return n.Panel.Width
	}
	return n.Panel.Height
}

// BoardLayout is one board and the panels cut from it.
type BoardLayout struct {
	Board  Board         `json:"board"`
	Panels []NestedPanel `json:"panels"`
}

// UsedArea returns the combined area of the panels on the board.
func (b BoardLayout) UsedArea() float64 {
	total := 0.0
	for _, p := range b.Panels {
		total += p.Panel.Area()
	}
	return total
}

// Efficiency returns the used share of the board in percent.
func (b BoardLayout) Efficiency() float64 {
	area := b.Board.Width * b.Board.Height
	if area == 0 {
		return 0
	}
	return b.UsedArea() / area * 100
}

// NestingResult is a board estimate for a cutlist.
type NestingResult struct {
	Boards   []BoardLayout `json:"boards"`
	Unplaced []Panel       `json:"unplaced"`
}

// Efficiency returns the used share across all boards in percent.
func (r NestingResult) Efficiency() float64 {
	used, total := 0.0, 0.0
	for _, b := range r.Boards {
		used += b.UsedArea()
		total += b.Board.Width * b.Board.Height
	}
	if total == 0 {
		return 0
	}
	return used / total * 100
}

// PanelCount returns the number of panels placed on boards.
func (r NestingResult) PanelCount() int {
	n := 0
	for _, b := range r.Boards {
		n += len(b.Panels)
	}
	return n
}

// ExpandPanels turns cutlist rows into one Panel per unit of quantity.
func ExpandPanels(rows []CutlistRow) []Panel {
	var panels []Panel
	for _, r := range rows {
		for i := 0; i < r.Quantity; i++ {
			panels = append(panels, Panel{ModuleID: r.ModuleID, Component: r.Component, Width: r.WidthMM, Height: r.DepthMM})
		}
	}
	return panels
}

// NestCutlist estimates how many boards a cutlist needs. Panels are placed
// largest first with a best-area-fit maximal-rectangles packer, trying both
// orientations and keeping the tighter fit; a fresh board is opened when
// nothing else fits. Panels larger than a board in both orientations are
// reported as unplaced.
func NestCutlist(rows []CutlistRow, board Board) (NestingResult, error) {
	if board.Width <= 0 || board.Height <= 0 || board.Kerf < 0 {
		return NestingResult{}, model.NewError(model.ErrCodeInvalidInput,
			"board %q must have positive size and non-negative kerf", board.Label)
	}

	panels := ExpandPanels(rows)
	sort.SliceStable(panels, func(i, j int) bool {
		return panels[i].Area() > panels[j].Area()
	})

	result := NestingResult{}
	remaining := panels
	for len(remaining) > 0 {
		layout, unplaced := packBoard(board, remaining)
		if len(layout.Panels) == 0 {
			break
		}
		result.Boards = append(result.Boards, layout)
		remaining = unplaced
	}
	result.Unplaced = remaining
	return result, nil
}

func packBoard(board Board, panels []Panel) (BoardLayout, []Panel) {
	layout := BoardLayout{Board: board}
	packer := newMaxRectsPacker(board.Width, board.Height, board.Kerf)
	var unplaced []Panel

	for _, panel := range panels {
		normalFit := packer.bestFit(panel.Width, panel.Height)
		rotatedFit := -1.0
		if panel.Width != panel.Height {
			rotatedFit = packer.bestFit(panel.Height, panel.Width)
		}

		rotated := false
		switch {
		case normalFit < 0 && rotatedFit < 0:
			unplaced = append(unplaced, panel)
			continue
		case normalFit < 0:
			rotated = true
		case rotatedFit >= 0 && rotatedFit < normalFit:
			rotated = true
		}

		w, h := panel.Width, panel.Height
		if rotated {
			w, h = h, w
		}
		ok, x, y := packer.insert(w, h)
		if !ok {
			unplaced = append(unplaced, panel)
			continue
		}
		layout.Panels = append(layout.Panels, NestedPanel{Panel: panel, X: x, Y: y, Rotated: rotated})
	}
	return layout, unplaced
}

// BoardsSummary renders a one-line description of a nesting result.
func BoardsSummary(r NestingResult) string {
	return fmt.Sprintf("%d boards, %d panels, %.1f%% yield, %d unplaced",
		len(r.Boards), r.PanelCount(), r.Efficiency(), len(r.Unplaced))
}

// maxRectsPacker keeps a list of maximal free rectangles and splits every
// overlapping one around each inserted piece.
type maxRectsPacker struct {
	freeRects []rect
	kerf      float64
}

type rect struct {
	x, y, w, h float64
}

const packEpsilon = 0.001

func newMaxRectsPacker(width, height, kerf float64) *maxRectsPacker {
	return &maxRectsPacker{
		freeRects: []rect{{0, 0, width, height}},
		kerf:      kerf,
	}
}

// insert places a w x h piece in the free rectangle that leaves the least
// area over, returning its position.
func (p *maxRectsPacker) insert(w, h float64) (bool, float64, float64) {
	bestIdx := -1
	bestAreaFit := -1.0
	wk := w + p.kerf
	hk := h + p.kerf

	for i, r := range p.freeRects {
		if wk <= r.w+packEpsilon && hk <= r.h+packEpsilon {
			areaFit := r.w*r.h - w*h
			if bestIdx < 0 || areaFit < bestAreaFit {
				bestIdx = i
				bestAreaFit = areaFit
			}
		}
	}
	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := p.freeRects[bestIdx]
	p.splitAround(rect{x: chosen.x, y: chosen.y, w: wk, h: hk})
	return true, chosen.x, chosen.y
}

// bestFit returns the leftover area insert would produce, or -1 if the piece
// does not fit anywhere. It does not modify the packer.
func (p *maxRectsPacker) bestFit(w, h float64) float64 {
	wk := w + p.kerf
	hk := h + p.kerf
	best := -1.0
	for _, r := range p.freeRects {
		if wk <= r.w+packEpsilon && hk <= r.h+packEpsilon {
			areaFit := r.w*r.h - w*h
			if best < 0 || areaFit < best {
				best = areaFit
			}
		}
	}
	return best
}

func (p *maxRectsPacker) splitAround(placed rect) {
	var next []rect
	for _, r := range p.freeRects {
		if !rectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}
		if placed.x > r.x+packEpsilon {
			next = append(next, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		if placed.x+placed.w < r.x+r.w-packEpsilon {
			next = append(next, rect{x: placed.x + placed.w, y: r.y, w: r.x + r.w - (placed.x + placed.w), h: r.h})
		}
		if placed.y > r.y+packEpsilon {
			next = append(next, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h-packEpsilon {
			next = append(next, rect{x: r.x, y: placed.y + placed.h, w: r.w, h: r.y + r.h - (placed.y + placed.h)})
		}
	}
	p.freeRects = pruneContained(next)
}

func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-packEpsilon && a.x+a.w > b.x+packEpsilon &&
		a.y < b.y+b.h-packEpsilon && a.y+a.h > b.y+packEpsilon
}

// pruneContained drops rects lying inside another. Of two equal rects the
// first is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if containsRect(a, b) && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+packEpsilon && outer.y <= inner.y+packEpsilon &&
		outer.x+outer.w >= inner.x+inner.w-packEpsilon &&
		outer.y+outer.h >= inner.y+inner.h-packEpsilon
}
