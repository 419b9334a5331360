package tui

import (
	"strings"

	"geoops/internal/geom"
)

// viewport maps lon/lat into map cells: the data bbox is stretched over the
// map area, then zoomed around its center and panned by whole cells.
type viewport struct {
	bbox    geom.BBox
	zoom    float64
	offsetX int
	offsetY int
}

// fit frames bb. Degenerate extents (a single point, a vertical line) are
// padded so they still project.
func (v *viewport) fit(bb geom.BBox) {
	if bb.MaxX <= bb.MinX {
		bb.MinX, bb.MaxX = bb.MinX-0.5, bb.MaxX+0.5
	}
	if bb.MaxY <= bb.MinY {
		bb.MinY, bb.MaxY = bb.MinY-0.5, bb.MaxY+0.5
	}
	*v = viewport{bbox: bb, zoom: 1.0}
}

func (v viewport) ok() bool {
	return v.bbox.MaxX > v.bbox.MinX && v.bbox.MaxY > v.bbox.MinY && v.zoom > 0
}

// norm returns the zoomed position of lon/lat in [0,1] map space (y up).
func (v viewport) norm(lon, lat float64) (float64, float64) {
	nx := (lon - v.bbox.MinX) / (v.bbox.MaxX - v.bbox.MinX)
	ny := (lat - v.bbox.MinY) / (v.bbox.MaxY - v.bbox.MinY)
	return 0.5 + (nx-0.5)*v.zoom, 0.5 + (ny-0.5)*v.zoom
}

// cell maps lon/lat to a map cell.
func (v viewport) cell(lon, lat float64, w, h int) (int, int, bool) {
	if !v.ok() {
		return 0, 0, false
	}
	zx, zy := v.norm(lon, lat)
	return int(zx*float64(w-1)) + v.offsetX, int((1.0-zy)*float64(h-1)) + v.offsetY, true
}

// micro maps lon/lat into the 2x4 braille microgrid of a w by h cell map.
func (v viewport) micro(lon, lat float64, w, h int) (int, int, bool) {
	if !v.ok() {
		return 0, 0, false
	}
	zx, zy := v.norm(lon, lat)
	return int(zx*float64(w*2-1)) + v.offsetX*2, int((1.0-zy)*float64(h*4-1)) + v.offsetY*4, true
}

// lonLat converts a map cell back to lon/lat.
func (v viewport) lonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !v.ok() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-v.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-v.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	return v.bbox.MinX + nx*(v.bbox.MaxX-v.bbox.MinX), v.bbox.MinY + ny*(v.bbox.MaxY-v.bbox.MinY), true
}

// project converts a coordinate path into microgrid points, skipping
// anything that does not project.
func (v viewport) project(path [][2]float64, w, h int) [][2]int {
	out := make([][2]int, 0, len(path))
	for _, p := range path {
		if mx, my, ok := v.micro(p[0], p[1], w, h); ok {
			out = append(out, [2]int{mx, my})
		}
	}
	return out
}

func (m Model) renderAsciiMap(w, h int) string {
	br := newBrailleBuf(w, h)

	if m.showPolys {
		for _, poly := range m.data.Polygons {
			var rings [][][2]int
			for _, ring := range poly {
				if r := m.view.project(ring, w, h); len(r) >= 3 {
					rings = append(rings, r)
				}
			}
			if len(rings) == 0 {
				continue
			}
			// holes are not cut out of the fill
			br.fillRing(rings[0])
			for _, r := range rings {
				br.drawPath(r, true)
			}
		}
	}

	// Points are drawn only when nothing else would hide them
	if m.showPoints && len(m.data.Lines) == 0 && len(m.data.Polygons) == 0 {
		for _, p := range m.data.Points {
			if mx, my, ok := m.view.micro(p[0], p[1], w, h); ok {
				br.setPixel(mx, my)
			}
		}
	}

	if m.showLines {
		for _, ls := range m.data.Lines {
			br.drawPath(m.view.project(ls, w, h), false)
		}
	}

	lines := br.toLines()

	// Hover highlight: an orange circle on the nearest vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := hoverStyle.Render("◯")
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// nearestVertex returns the microgrid position of the vertex closest to the
// given microgrid point.
func (m Model) nearestVertex(mx, my, w, h int) (int, int, bool) {
	best := -1
	bx, by := mx, my
	for _, p := range m.data.Points {
		px, py, ok := m.view.micro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		dx, dy := px-mx, py-my
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best = d
			bx, by = px, py
		}
	}
	return bx, by, best >= 0
}

// inspectNearest finds the vertex closest to the viewport center and returns lon/lat.
func (m Model) inspectNearest() (lon, lat float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := -1
	var best [2]float64
	for _, p := range m.data.Points {
		sx, sy, ok2 := m.view.cell(p[0], p[1], w, h)
		if !ok2 {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		if d := dx*dx + dy*dy; bestD < 0 || d < bestD {
			bestD = d
			best = p
		}
	}
	if bestD < 0 {
		return 0, 0, false
	}
	return best[0], best[1], true
}
