// Synthetic world generation using layered simplex noise.
// Produces an ordered tile list (named market provinces first, filler
// after), the market sites themselves, and the river network, enough
// to exercise a full routing build without external map data.
// See design doc Section 3.
package world

import (
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tradewinds/internal/geo"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Cols, Rows  int     // Grid extent in hex cells
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for water (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
	Markets     int     // Named market sites to place
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Cols:        96,
		Rows:        64,
		Seed:        0,
		SeaLevel:    0.30,
		MountainLvl: 0.72,
		Markets:     12,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Cols:        24,
		Rows:        16,
		Seed:        42,
		SeaLevel:    0.32,
		MountainLvl: 0.75,
		Markets:     4,
	}
}

// DefaultProjector returns the projector whose constants match the
// generated grid extent: columns span the bounding rectangle exactly.
func DefaultProjector(cfg GenConfig) *geo.Projector {
	return &geo.Projector{
		MinLat: -60, MaxLat: 60,
		MinLng: -90, MaxLng: 90,
		HexSize: 1 / (1.5 * float64(cfg.Cols)),
	}
}

// MarketSite is a named province chosen as a trade hub candidate.
type MarketSite struct {
	Province ProvinceID `json:"province"`
	Name     string     `json:"name"`
	Pos      geo.LatLng `json:"pos"`
	Coastal  bool       `json:"coastal"`
	Score    float64    `json:"score"`
}

// World is one generated data set, ready for a graph build.
type World struct {
	Tiles   []Tile       // Named market tiles first, then filler; builder input order
	Markets []MarketSite // Sorted by descending desirability
	Rivers  *RiverNetwork
}

// Generated filler province ids start here; named market sites use
// 1..Markets. Leaves room for externally supplied named provinces.
const fillerBase ProvinceID = 1000

type genCell struct {
	terrain Terrain
	elev    float64
	pid     ProvinceID // claiming province after assignment
	market  int        // index into markets, or -1
}

// Generate creates a complete world. Deterministic for a fixed nonzero
// seed and config.
func Generate(cfg GenConfig, proj *geo.Projector) *World {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Three noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	cells := make([][]genCell, cfg.Cols)
	for col := range cells {
		cells[col] = make([]genCell, cfg.Rows)
	}

	sqrt3 := math.Sqrt(3.0)
	for col := 0; col < cfg.Cols; col++ {
		for row := 0; row < cfg.Rows; row++ {
			// Hex center in continuous space for noise sampling.
			x := float64(col) * 1.5
			y := float64(row) * sqrt3
			if col%2 != 0 {
				y += sqrt3 / 2
			}

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

			// Continental shaping: push elevation down toward the
			// rectangle border so the map is ringed by ocean.
			fx := borderDist(col, cfg.Cols)
			fy := borderDist(row, cfg.Rows)
			falloff := math.Min(fx, fy) * 4
			if falloff > 1 {
				falloff = 1
			}
			elev *= falloff

			// Colder toward the top and bottom bands and at altitude.
			latFrac := math.Abs(float64(row)/float64(cfg.Rows-1)*2 - 1)
			temp = temp*0.6 + (1-latFrac)*0.3 + (1-elev)*0.1

			cells[col][row] = genCell{
				terrain: deriveTerrain(elev, rain, temp, cfg),
				elev:    elev,
				market:  -1,
			}
		}
	}

	markCoastalCells(cells, cfg)
	riverPairs := placeRivers(cells, cfg, seed)
	markets := chooseMarkets(cells, cfg, proj, seed)

	// Assign claiming province ids: markets first, then filler in
	// column-major order.
	for i, m := range markets {
		col, row := proj.Cell(m.Pos)
		cells[col][row].pid = m.Province
		cells[col][row].market = i
	}
	next := fillerBase
	for col := 0; col < cfg.Cols; col++ {
		for row := 0; row < cfg.Rows; row++ {
			if cells[col][row].pid == 0 {
				cells[col][row].pid = next
				next++
			}
		}
	}

	rivers := NewRiverNetwork()
	for _, pair := range riverPairs {
		a := cells[pair[0][0]][pair[0][1]].pid
		b := cells[pair[1][0]][pair[1][1]].pid
		rivers.Connect(a, b)
	}

	// Emit tiles: named market provinces first so they claim their
	// cells, then a filler tile for every cell. Market cells still get
	// a filler tile under a fresh id; it aliases onto the market's
	// node, same as duplicate province records in real map data.
	tiles := make([]Tile, 0, len(markets)+cfg.Cols*cfg.Rows)
	for _, m := range markets {
		col, row := proj.Cell(m.Pos)
		pos := proj.LatLngAt(col, row)
		tiles = append(tiles, Tile{ID: m.Province, Terrain: cells[col][row].terrain, Pos: &pos})
	}
	for col := 0; col < cfg.Cols; col++ {
		for row := 0; row < cfg.Rows; row++ {
			c := cells[col][row]
			id := c.pid
			if c.market >= 0 {
				id = next
				next++
			}
			pos := proj.LatLngAt(int32(col), int32(row))
			tiles = append(tiles, Tile{ID: id, Terrain: c.terrain, Pos: &pos})
		}
	}

	return &World{Tiles: tiles, Markets: markets, Rivers: rivers}
}

// borderDist returns the normalized distance of an index from the
// nearest edge of [0, n).
func borderDist(i, n int) float64 {
	d := i
	if n-1-i < d {
		d = n - 1 - i
	}
	return float64(d) / float64(n)
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel*0.6 {
		return TerrainOcean
	}
	if elev < cfg.SeaLevel {
		return TerrainSea
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if temp < 0.25 {
		return TerrainTundra
	}
	if rain < 0.25 && temp > 0.5 {
		return TerrainDesert
	}
	if rain > 0.7 && elev < 0.45 {
		return TerrainSwamp
	}
	if rain > 0.45 && elev > 0.45 {
		return TerrainForest
	}
	return TerrainPlains
}

// markCoastalCells converts low land cells adjacent to water into coast.
func markCoastalCells(cells [][]genCell, cfg GenConfig) {
	type pt struct{ col, row int }
	var toMark []pt

	for col := 0; col < cfg.Cols; col++ {
		for row := 0; row < cfg.Rows; row++ {
			c := cells[col][row]
			if c.terrain.IsWater() || c.elev >= 0.5 {
				continue
			}
			if c.terrain != TerrainPlains && c.terrain != TerrainForest {
				continue
			}
			for _, d := range geo.NeighborOffsets(int32(col)) {
				nc, nr := col+int(d[0]), row+int(d[1])
				if nc < 0 || nc >= cfg.Cols || nr < 0 || nr >= cfg.Rows {
					continue
				}
				if cells[nc][nr].terrain.IsWater() {
					toMark = append(toMark, pt{col, row})
					break
				}
			}
		}
	}

	for _, p := range toMark {
		cells[p.col][p.row].terrain = TerrainCoast
	}
}

// placeRivers traces downhill paths from highland cells, marking land
// cells as river terrain and recording every adjacent cell pair the
// river runs through. Returns the cell pairs; province ids are not
// assigned yet at this point.
func placeRivers(cells [][]genCell, cfg GenConfig, seed int64) [][2][2]int {
	rng := rand.New(rand.NewSource(seed + 100))

	type pt struct{ col, row int }
	var sources []pt
	for col := 0; col < cfg.Cols; col++ {
		for row := 0; row < cfg.Rows; row++ {
			c := cells[col][row]
			if c.elev > 0.65 && !c.terrain.IsWater() {
				sources = append(sources, pt{col, row})
			}
		}
	}

	numRivers := len(sources) / 8
	if numRivers < 2 {
		numRivers = 2
	}
	if numRivers > 10 {
		numRivers = 10
	}
	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > numRivers {
		sources = sources[:numRivers]
	}

	var pairs [][2][2]int
	for _, start := range sources {
		cur := start
		visited := map[pt]bool{}
		for step := 0; step < 50; step++ {
			visited[cur] = true
			c := &cells[cur.col][cur.row]
			if c.terrain.IsWater() {
				break
			}
			if c.terrain != TerrainMountain && c.terrain != TerrainCoast {
				c.terrain = TerrainRiver
			}

			// Steepest descent to the lowest unvisited neighbor.
			var best *pt
			bestElev := c.elev
			for _, d := range geo.NeighborOffsets(int32(cur.col)) {
				n := pt{cur.col + int(d[0]), cur.row + int(d[1])}
				if n.col < 0 || n.col >= cfg.Cols || n.row < 0 || n.row >= cfg.Rows {
					continue
				}
				if visited[n] {
					continue
				}
				if cells[n.col][n.row].elev < bestElev {
					bestElev = cells[n.col][n.row].elev
					nn := n
					best = &nn
				}
			}
			if best == nil {
				break // no downhill path, river ends
			}
			pairs = append(pairs, [2][2]int{{cur.col, cur.row}, {best.col, best.row}})
			cur = *best
		}
	}
	return pairs
}

// chooseMarkets scores land cells for market desirability and picks the
// top cfg.Markets sites with a minimum separation, assigning province
// ids 1..N in score order and procedural names.
func chooseMarkets(cells [][]genCell, cfg GenConfig, proj *geo.Projector, seed int64) []MarketSite {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		col, row int
		score    float64
		coastal  bool
	}
	var candidates []scored

	for col := 0; col < cfg.Cols; col++ {
		for row := 0; row < cfg.Rows; row++ {
			c := cells[col][row]
			if c.terrain.IsWater() {
				continue
			}
			s, coastal := marketScore(cells, cfg, col, row)
			if s > 0 {
				candidates = append(candidates, scored{col, row, s, coastal})
			}
		}
	}

	// Sort by score descending; stable column-major tie-break keeps the
	// selection deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].col != candidates[j].col {
			return candidates[i].col < candidates[j].col
		}
		return candidates[i].row < candidates[j].row
	})

	const minSeparation = 6
	var picked []scored
	for _, c := range candidates {
		if len(picked) >= cfg.Markets {
			break
		}
		ok := true
		for _, p := range picked {
			dc, dr := c.col-p.col, c.row-p.row
			if dc < 0 {
				dc = -dc
			}
			if dr < 0 {
				dr = -dr
			}
			if dc < minSeparation && dr < minSeparation {
				ok = false
				break
			}
		}
		if ok {
			picked = append(picked, c)
		}
	}

	names := generateNames(rng, len(picked))
	markets := make([]MarketSite, len(picked))
	for i, p := range picked {
		markets[i] = MarketSite{
			Province: ProvinceID(i + 1),
			Name:     names[i],
			Pos:      proj.LatLngAt(int32(p.col), int32(p.row)),
			Coastal:  p.coastal,
			Score:    p.score,
		}
	}
	return markets
}

// marketScore evaluates how desirable a cell is as a trade hub site.
// Prefers coasts and rivers (cheap routes), then fertile plains.
func marketScore(cells [][]genCell, cfg GenConfig, col, row int) (float64, bool) {
	score := 0.0
	switch cells[col][row].terrain {
	case TerrainCoast:
		score += 4.0 // harbors are prime locations
	case TerrainRiver:
		score += 3.5
	case TerrainPlains:
		score += 3.0
	case TerrainForest:
		score += 1.5
	case TerrainDesert, TerrainSwamp, TerrainTundra:
		score += 0.5
	case TerrainMountain:
		score += 0.3
	default:
		return 0, false
	}

	coastal := false
	diversity := map[Terrain]bool{}
	for _, d := range geo.NeighborOffsets(int32(col)) {
		nc, nr := col+int(d[0]), row+int(d[1])
		if nc < 0 || nc >= cfg.Cols || nr < 0 || nr >= cfg.Rows {
			continue
		}
		t := cells[nc][nr].terrain
		if t.IsWater() {
			coastal = true
		} else {
			diversity[t] = true
		}
	}
	score += float64(len(diversity)) * 0.3
	if coastal {
		score += 0.5
	}
	return score, coastal || cells[col][row].terrain == TerrainCoast
}

// generateNames produces procedural port names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Salt", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Tide", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"haven", "ford", "harbor", "wick", "bridge", "gate", "quay",
		"stead", "mouth", "field", "dale", "crest", "vale", "port",
		"town", "bury", "strand", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)
	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}
	return names
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(tiles []Tile) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range tiles {
		counts[t.Terrain]++
	}
	return counts
}
