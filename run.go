package gadget

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// game adapts a Desktop to the ebiten.Game interface.
type game struct {
	desktop *Desktop
}

func (g *game) Update() error {
	g.desktop.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.desktop.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.desktop.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window sized to cfg and drives the desktop's Update/Draw loop
// until the window closes. Widgets should be created and mounted before Run;
// MarkInited is invoked here for any widget not yet activated.
func Run(d *Desktop, cfg RunConfig) error {
	width := cfg.Width
	if width <= 0 {
		width = int(d.viewportW)
	}
	height := cfg.Height
	if height <= 0 {
		height = int(d.viewportH)
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	for _, w := range d.widgets {
		w.MarkInited()
	}
	return ebiten.RunGame(&game{desktop: d})
}
