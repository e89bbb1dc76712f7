package world

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/ashfall-games/towers/pkg/tower"
)

func chunkIdHash(id tower.ChunkId) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], id.X)
	binary.LittleEndian.PutUint32(buf[4:], id.Y)
	return xxhash.Sum64(buf[:])
}

// chunkGroup is one chunk's worth of relative tower ids, produced by
// group().
type chunkGroup struct {
	ChunkId  tower.ChunkId
	TowerIds []tower.RelativeTowerId
}

// group buckets ids by the chunk that owns them, in a deterministic order
// (by each chunk id's xxhash, not Go's randomized map seed): load-bearing
// for shrink and spawn generation being reproducible given the same input
// set.
func group(ids []tower.TowerId) []chunkGroup {
	buckets := make(map[uint64]*chunkGroup)
	for _, id := range ids {
		chunkID, rel := id.Split()
		key := chunkIdHash(chunkID)
		g, ok := buckets[key]
		if !ok {
			g = &chunkGroup{ChunkId: chunkID}
			buckets[key] = g
		}
		g.TowerIds = append(g.TowerIds, rel)
	}
	keys := make([]uint64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]chunkGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// humanSpawnBubbleRadius is the spawn-bubble radius, in cells, used for
// human-controlled players. Unlike the bot radius, this isn't configurable:
// nothing in the original exposes a debug/release hook for it.
const humanSpawnBubbleRadius uint16 = 50

// spawnBubbleRadius returns the radius (in cells) a player's spawn bubble
// covers: bots get s.BotSpawnBubbleRadius, human players always get
// humanSpawnBubbleRadius.
func (s *Service) spawnBubbleRadius(id tower.PlayerId) uint16 {
	if id.Bot() {
		return s.BotSpawnBubbleRadius
	}
	return humanSpawnBubbleRadius
}

// spawnBubble calls f once for every TowerId within playerId's spawn
// bubble radius around origin.
func (s *Service) spawnBubble(origin tower.TowerId, playerId tower.PlayerId, f func(tower.TowerId)) {
	bubble(origin, s.spawnBubbleRadius(playerId), f)
}

// bubble calls f once for every TowerId within radius cells of origin,
// visiting each id exactly once via breadth-first flood fill.
func bubble(origin tower.TowerId, radius uint16, f func(tower.TowerId)) {
	r2 := uint64(radius) * uint64(radius)
	seen := map[tower.TowerId]struct{}{origin: {}}
	queue := []tower.TowerId{origin}
	f(origin)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range id.Neighbors() {
			if n.DistanceSquared(origin) > r2 {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
			f(n)
		}
	}
}
