// Package spacewar provides the demo game: a nebula, a planet and two ships.
package spacewar

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/younwookim/spacewar/internal/domain/entity"
	"github.com/younwookim/spacewar/internal/domain/input"
	"github.com/younwookim/spacewar/internal/infrastructure/config"
	"github.com/younwookim/spacewar/internal/infrastructure/texture"
)

// Texture names in sprites.json, in load order.
const (
	TextureNebula = "nebula"
	TexturePlanet = "planet"
	TextureShip   = "ship"
	TextureShip2  = "ship2"
)

var textureNames = []string{TextureNebula, TexturePlanet, TextureShip, TextureShip2}

// Surface is the render surface the game draws and loads through.
type Surface interface {
	entity.Drawer
	texture.Loader
	SetBackColor(c color.Color)
}

// AssetChanges reports asset files changed on disk.
type AssetChanges interface {
	Drain() []string
}

// Spacewar is the demo game stepped by the frame driver.
type Spacewar struct {
	surface Surface
	input   *input.Collector
	display config.DisplayConfig
	keys    config.KeysConfig
	assets  config.AssetsConfig
	sprites config.SpritesConfig
	logger  *log.Logger
	changes AssetChanges

	textures map[string]*texture.Manager
	nebula   *entity.Image
	planet   *entity.Image
	ship1    *entity.Image
	ship2    *entity.Image
}

// New creates the game. Nothing is loaded until Initialize.
func New(surface Surface, in *input.Collector, cfg *config.GameConfig, logger *log.Logger) *Spacewar {
	if logger == nil {
		logger = log.Default()
	}
	return &Spacewar{
		surface:  surface,
		input:    in,
		display:  cfg.Settings.Display,
		keys:     cfg.Settings.Keys,
		assets:   cfg.Settings.Assets,
		sprites:  *cfg.Sprites,
		logger:   logger,
		textures: make(map[string]*texture.Manager),
		nebula:   entity.NewImage(),
		planet:   entity.NewImage(),
		ship1:    entity.NewImage(),
		ship2:    entity.NewImage(),
	}
}

// WatchAssets reloads textures whose files change.
func (g *Spacewar) WatchAssets(c AssetChanges) {
	g.changes = c
}

// Initialize loads the textures and places the sprites.
func (g *Spacewar) Initialize() error {
	g.surface.SetBackColor(g.display.BackColor.RGBA)

	for _, name := range textureNames {
		path, ok := g.sprites.Textures[name]
		if !ok {
			return fmt.Errorf("no %s texture configured", name)
		}
		m := texture.NewManager(g.assets.TransColor.RGBA, g.logger)
		if err := m.Initialize(g.surface, path); err != nil {
			return fmt.Errorf("error initializing %s texture: %w", name, err)
		}
		g.textures[name] = m
	}

	if err := g.nebula.Initialize(g.surface, 0, 0, 0, g.textures[TextureNebula]); err != nil {
		return fmt.Errorf("error initializing nebula: %w", err)
	}
	if err := g.planet.Initialize(g.surface, 0, 0, 0, g.textures[TexturePlanet]); err != nil {
		return fmt.Errorf("error initializing planet: %w", err)
	}
	g.planet.SetX(g.width()*0.5 - float64(g.planet.Width())*0.5)
	g.planet.SetY(g.height()*0.5 - float64(g.planet.Height())*0.5)

	ship := g.sprites.Ship
	if err := g.initShip(g.ship1, TextureShip); err != nil {
		return err
	}
	g.ship1.SetX(g.width() / 4)
	g.ship1.SetY(g.height() / 4)
	g.ship1.SetDegrees(45)

	if err := g.initShip(g.ship2, TextureShip2); err != nil {
		return err
	}
	g.ship2.SetX(g.width() / 1.5)
	g.ship2.SetY(g.height() / 4)
	g.ship2.SetDegrees(145)
	g.ship2.SetScale(ship.Scale)

	g.logger.Info("spacewar initialized", "textures", len(g.textures))
	return nil
}

func (g *Spacewar) initShip(img *entity.Image, name string) error {
	ship := g.sprites.Ship
	if err := img.Initialize(g.surface, ship.Width, ship.Height, ship.Cols, g.textures[name]); err != nil {
		return fmt.Errorf("error initializing %s: %w", name, err)
	}
	img.SetFrames(ship.StartFrame, ship.EndFrame)
	img.SetCurrentFrame(ship.StartFrame)
	img.SetFrameDelay(ship.AnimationDelay)
	return nil
}

// Update moves both ships. Ship 1 follows the keyboard; ship 2 spins,
// falls and shrinks, and starts over at full size after leaving the screen.
func (g *Spacewar) Update(frameTime float64) {
	g.reloadChanged()
	g.updateShip1(frameTime)
	g.updateShip2(frameTime)
}

func (g *Spacewar) updateShip1(frameTime float64) {
	ship := g.sprites.Ship
	s := g.ship1

	if g.input.IsKeyDown(input.KeyCode(g.keys.ShipRight)) {
		s.SetDegrees(s.Degrees() + frameTime*ship.RotationRate)
	}
	if g.input.IsKeyDown(input.KeyCode(g.keys.ShipLeft)) {
		s.SetDegrees(s.Degrees() - frameTime*ship.RotationRate)
	}
	if g.input.IsKeyDown(input.KeyCode(g.keys.ShipUp)) {
		s.SetY(s.Y() - frameTime*ship.Speed)
	}
	if g.input.IsKeyDown(input.KeyCode(g.keys.ShipDown)) {
		s.SetY(s.Y() + frameTime*ship.Speed)
	}
	g.wrap(s)
	s.Update(frameTime)
}

func (g *Spacewar) updateShip2(frameTime float64) {
	ship := g.sprites.Ship
	s := g.ship2

	s.Update(frameTime)
	s.SetDegrees(s.Degrees() - frameTime*ship.RotationRate)
	s.SetY(s.Y() + frameTime*ship.Speed)
	s.SetScale(max(0, s.Scale()-frameTime*ship.ScaleRate))
	if s.Y() > g.height() {
		s.SetY(-float64(s.Height()))
		s.SetScale(ship.Scale)
	}
}

// wrap moves a sprite that left the screen to the opposite edge.
func (g *Spacewar) wrap(s *entity.Image) {
	w, h := float64(s.Width()), float64(s.Height())
	switch {
	case s.X() > g.width():
		s.SetX(-w)
	case s.X() < -w:
		s.SetX(g.width())
	}
	switch {
	case s.Y() > g.height():
		s.SetY(-h)
	case s.Y() < -h:
		s.SetY(g.height())
	}
}

func (g *Spacewar) reloadChanged() {
	if g.changes == nil {
		return
	}
	for _, path := range g.changes.Drain() {
		for name, m := range g.textures {
			if m.Path() != path {
				continue
			}
			if err := m.Reload(); err != nil {
				g.logger.Warn("texture reload failed", "texture", name, "err", err)
				continue
			}
			g.logger.Info("texture reloaded", "texture", name, "path", path)
		}
	}
}

func (g *Spacewar) AI()         {}
func (g *Spacewar) Collisions() {}

// Render draws back to front.
func (g *Spacewar) Render() {
	g.nebula.Draw()
	g.planet.Draw()
	g.ship1.Draw()
	g.ship2.Draw()
}

// ReleaseAll releases every texture.
func (g *Spacewar) ReleaseAll() {
	for _, name := range textureNames {
		if m, ok := g.textures[name]; ok {
			m.OnLostDevice()
		}
	}
}

// ResetAll reloads every texture. A texture that fails stays released and
// its sprites are skipped until the next reset.
func (g *Spacewar) ResetAll() {
	for _, name := range textureNames {
		m, ok := g.textures[name]
		if !ok {
			continue
		}
		if err := m.OnResetDevice(); err != nil {
			g.logger.Error("texture reset failed", "texture", name, "err", err)
		}
	}
}

func (g *Spacewar) width() float64  { return float64(g.display.Width) }
func (g *Spacewar) height() float64 { return float64(g.display.Height) }

func (g *Spacewar) Ship1() *entity.Image  { return g.ship1 }
func (g *Spacewar) Ship2() *entity.Image  { return g.ship2 }
func (g *Spacewar) Planet() *entity.Image { return g.planet }
