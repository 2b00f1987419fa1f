package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
)

// FlakeCount maps viewport area onto the configured flake count range.
// The result is monotone in area and clamped to [CountMin, CountMax].
func FlakeCount(w, h int, cfg config.SnowConfig) int {
	area := float64(w) * float64(h)
	n := math.Floor(mapRange(area, cfg.RefAreaMin, cfg.RefAreaMax, float64(cfg.CountMin), float64(cfg.CountMax)))
	return int(clamp(n, float64(cfg.CountMin), float64(cfg.CountMax)))
}

// GroundLevel returns the y at which flakes land for a viewport.
func GroundLevel(w, h int, marginFrac float64, cfg config.SnowConfig) float32 {
	return float32(float64(h) - float64(min(w, h))*marginFrac*cfg.GroundFrac)
}

// FlakePool is a fixed-size population of glyph flakes. Flakes live as ECS
// entities; a melted flake is reset in place rather than removed.
type FlakePool struct {
	world  *ecs.World
	mapper *ecs.Map2[components.FlakeBody, components.Flake]
	filter *ecs.Filter2[components.FlakeBody, components.Flake]

	entities []ecs.Entity

	cfg        config.SnowConfig
	marginFrac float64
	wind       Sampler
	rng        *rand.Rand

	text          string
	glyphs        []rune
	width, height float32
	ground        float32

	// Events since the last TickStats call
	landings int
	respawns int
}

// NewFlakePool creates an empty pool. marginFrac is the raster margin the
// ground line is derived from.
func NewFlakePool(cfg config.SnowConfig, marginFrac float64, wind Sampler, rng *rand.Rand) *FlakePool {
	world := ecs.NewWorld()
	return &FlakePool{
		world:      world,
		mapper:     ecs.NewMap2[components.FlakeBody, components.Flake](world),
		filter:     ecs.NewFilter2[components.FlakeBody, components.Flake](world),
		cfg:        cfg,
		marginFrac: marginFrac,
		wind:       wind,
		rng:        rng,
	}
}

// Rebuild replaces every flake with a fresh airborne one sized for the
// viewport. Glyphs are drawn from text.
func (p *FlakePool) Rebuild(w, h int, text string) {
	for _, e := range p.entities {
		p.world.RemoveEntity(e)
	}
	p.entities = p.entities[:0]

	p.text = text
	p.glyphs = []rune(text)
	p.width = float32(max(w, 0))
	p.height = float32(max(h, 0))
	p.ground = GroundLevel(w, h, p.marginFrac, p.cfg)
	p.landings = 0
	p.respawns = 0

	n := FlakeCount(w, h, p.cfg)
	for i := 0; i < n; i++ {
		var body components.FlakeBody
		var flake components.Flake
		x := p.rng.Float64() * float64(p.width)
		y := randRange(p.rng, -float64(p.height), 0)
		p.spawn(&body, &flake, x, y)
		p.entities = append(p.entities, p.mapper.NewEntity(&body, &flake))
	}
}

// spawn writes a new incarnation into an existing slot.
func (p *FlakePool) spawn(body *components.FlakeBody, flake *components.Flake, x, y float64) {
	size := float32(randRange(p.rng, p.cfg.SizeMin, p.cfg.SizeMax))
	*body = components.FlakeBody{
		Pos:       components.Position{X: float32(x), Y: float32(y)},
		FallSpeed: float32(randRange(p.rng, p.cfg.FallMin, p.cfg.FallMax)),
		Size:      size,
		BaseSize:  size,
		Life:      1,
	}
	*flake = components.Flake{
		State:       components.FlakeAir,
		Char:        p.pickGlyph(),
		Ground:      p.ground,
		Seed:        float32(p.rng.Float64() * p.cfg.SeedMax),
		Incarnation: flake.Incarnation,
	}
}

// fallbackGlyph is used when the pool has no text to draw from.
const fallbackGlyph = '0'

func (p *FlakePool) pickGlyph() rune {
	if len(p.glyphs) == 0 {
		return fallbackGlyph
	}
	return p.glyphs[p.rng.Intn(len(p.glyphs))]
}

// FlakeGlyphs returns the distinct runes a pool built from text can
// spawn, in first-seen order.
func FlakeGlyphs(text string) []rune {
	if text == "" {
		return []rune{fallbackGlyph}
	}
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range text {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Text returns the text the flakes were last built from.
func (p *FlakePool) Text() string {
	return p.text
}

// Tick advances every flake one step at time t (seconds).
func (p *FlakePool) Tick(t float64) {
	query := p.filter.Query()
	for query.Next() {
		body, flake := query.Get()
		switch flake.State {
		case components.FlakeAir:
			p.fall(body, flake, t)
		case components.FlakeMelting:
			p.melt(body, flake)
		}
	}
}

func (p *FlakePool) fall(body *components.FlakeBody, flake *components.Flake, t float64) {
	x, y := float64(body.Pos.X), float64(body.Pos.Y)
	s := p.cfg.WindNoise
	wind := (p.wind.Sample(x*s, y*s, t*p.cfg.WindTime) - 0.5) * p.cfg.WindStrength
	wobble := p.cfg.WobbleAmp * math.Sin((t+float64(flake.Seed))*p.cfg.WobbleFreq)

	body.Pos.X += float32(wind + wobble)
	body.Pos.Y += body.FallSpeed

	margin := float32(p.cfg.WrapMargin)
	if body.Pos.X < -margin {
		body.Pos.X = p.width + margin
	}
	if body.Pos.X > p.width+margin {
		body.Pos.X = -margin
	}

	if body.Pos.Y >= flake.Ground {
		body.Pos.Y = flake.Ground
		flake.State = components.FlakeMelting
		p.landings++
	}
}

func (p *FlakePool) melt(body *components.FlakeBody, flake *components.Flake) {
	body.Life -= float32(p.cfg.MeltRate)
	body.Size = max(0, body.BaseSize*body.Life)
	body.Pos.Y = lerp32(body.Pos.Y, flake.Ground+float32(p.cfg.GroundSink), 1-p.cfg.GroundSoften)

	if body.Life <= float32(p.cfg.ResetLife) || body.Size <= float32(p.cfg.ResetSize) {
		flake.Incarnation++
		x := p.rng.Float64() * float64(p.width)
		y := randRange(p.rng, -float64(p.height)*0.5, -10)
		p.spawn(body, flake, x, y)
		p.respawns++
	}
}

// Each calls fn for every flake. fn may modify the flake in place.
func (p *FlakePool) Each(fn func(body *components.FlakeBody, flake *components.Flake)) {
	query := p.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Len returns the pool size.
func (p *FlakePool) Len() int {
	return len(p.entities)
}

// Counts returns how many flakes are airborne and melting.
func (p *FlakePool) Counts() (air, melting int) {
	p.Each(func(_ *components.FlakeBody, f *components.Flake) {
		if f.State == components.FlakeAir {
			air++
		} else {
			melting++
		}
	})
	return air, melting
}

// TickStats returns landings and respawns since the previous call.
func (p *FlakePool) TickStats() (landings, respawns int) {
	landings, respawns = p.landings, p.respawns
	p.landings, p.respawns = 0, 0
	return landings, respawns
}

// Ground returns the current ground line.
func (p *FlakePool) Ground() float32 {
	return p.ground
}

// FlakeAlpha returns the draw alpha of a flake in [0, 255].
func FlakeAlpha(cfg config.SnowConfig, body *components.FlakeBody, flake *components.Flake) float32 {
	if flake.State == components.FlakeAir {
		return float32(cfg.AirAlpha)
	}
	a := cfg.MeltAlpha - (1-float64(body.Life))*cfg.MeltAlpha*cfg.MeltFade
	return float32(max(0, a))
}
