//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"quakefield/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type faultLineProvider interface {
	FaultLines() [][4]float64
}

type terrainProvider interface {
	Terrain() []float64
}

type boundaryProvider interface {
	BoundaryMask() []float64
}

// Overlay draws optional debugging visuals on top of the base field view:
// fault lines, the terrain heightmap and the boundary attenuation mask.
type Overlay struct {
	sim   core.Sim
	scale int

	showFaults   bool
	showTerrain  bool
	showBoundary bool

	terrainImg *ebiten.Image
	terrainBuf []byte
	terrainSet bool

	boundaryImg *ebiten.Image
	boundaryBuf []byte
	boundarySet bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay bound to the provided simulation.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, showFaults: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles overlay toggle keys. Terrain or faults may have been
// regenerated, so cached images are rebuilt on demand.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showFaults = !o.showFaults
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.showTerrain = !o.showTerrain
		o.terrainSet = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBoundary = !o.showBoundary
		o.boundarySet = false
	}
}

// Invalidate drops cached images after a reset regenerated terrain.
func (o *Overlay) Invalidate() {
	if o == nil {
		return
	}
	o.terrainSet = false
	o.boundarySet = false
}

// Draw paints enabled overlay layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil {
		return
	}
	if o.showTerrain {
		o.drawTerrain(screen)
	}
	if o.showBoundary {
		o.drawBoundary(screen)
	}
	if o.showFaults {
		o.drawFaults(screen)
	}
}

func (o *Overlay) drawTerrain(screen *ebiten.Image) {
	provider, ok := o.sim.(terrainProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	if !o.terrainSet {
		o.ensureImage(&o.terrainImg, &o.terrainBuf, size)
		terrain := provider.Terrain()
		for i, v := range terrain {
			// Terrain sits roughly in [-0.4, 0.6]; normalize for shading.
			level := (v + 0.4) / 1.0
			if level < 0 {
				level = 0
			}
			if level > 1 {
				level = 1
			}
			g := uint8(level * 255)
			base := i * 4
			o.terrainBuf[base+0] = g
			o.terrainBuf[base+1] = g
			o.terrainBuf[base+2] = g
			o.terrainBuf[base+3] = 140
		}
		o.terrainImg.WritePixels(o.terrainBuf)
		o.terrainSet = true
	}
	o.blit(screen, o.terrainImg)
}

func (o *Overlay) drawBoundary(screen *ebiten.Image) {
	provider, ok := o.sim.(boundaryProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	if !o.boundarySet {
		o.ensureImage(&o.boundaryImg, &o.boundaryBuf, size)
		mask := provider.BoundaryMask()
		for i, v := range mask {
			// Stronger tint where the mask absorbs more.
			a := uint8((1 - v) * 160)
			base := i * 4
			o.boundaryBuf[base+0] = 0
			o.boundaryBuf[base+1] = uint8(float64(a) * 0.8)
			o.boundaryBuf[base+2] = a
			o.boundaryBuf[base+3] = a
		}
		o.boundaryImg.WritePixels(o.boundaryBuf)
		o.boundarySet = true
	}
	o.blit(screen, o.boundaryImg)
}

func (o *Overlay) drawFaults(screen *ebiten.Image) {
	provider, ok := o.sim.(faultLineProvider)
	if !ok {
		return
	}
	for _, line := range provider.FaultLines() {
		x1 := line[0] * float64(o.scale)
		y1 := line[1] * float64(o.scale)
		x2 := line[2] * float64(o.scale)
		y2 := line[3] * float64(o.scale)

		length := math.Hypot(x2-x1, y2-y1)
		if length <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(length, 1)
		op.GeoM.Rotate(math.Atan2(y2-y1, x2-x1))
		op.GeoM.Translate(x1, y1)
		op.ColorScale.ScaleWithColor(color.RGBA{R: 255, G: 220, B: 80, A: 200})
		screen.DrawImage(o.pixel, op)
	}
}

func (o *Overlay) ensureImage(img **ebiten.Image, buf *[]byte, size core.Size) {
	if *img == nil || (*img).Bounds().Dx() != size.W || (*img).Bounds().Dy() != size.H {
		*img = ebiten.NewImage(size.W, size.H)
		*buf = make([]byte, 4*size.W*size.H)
	}
}

func (o *Overlay) blit(screen *ebiten.Image, img *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(img, op)
}
