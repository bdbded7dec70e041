package engine

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// regionSeed derives the deterministic RNG seed a region's reproduction
// step uses: hash(world_seed, epoch, region_key). Hashing the key's string
// form keeps regions mutually independent regardless of the order the
// engine's region-parallel fan-out visits them in.
func regionSeed(worldSeed, epoch uint64, regionKey string) int64 {
	buf := make([]byte, 16+len(regionKey))
	binary.LittleEndian.PutUint64(buf[0:8], worldSeed)
	binary.LittleEndian.PutUint64(buf[8:16], epoch)
	copy(buf[16:], regionKey)
	return int64(xxhash.Sum64(buf))
}

// organismSeed derives the deterministic per-organism seed the source
// associates with Phase 1 expression: hash(world_seed, epoch, organism_id).
// This engine expresses a phenotype once, at birth, rather than
// re-expressing it every epoch, so no engine phase calls this function;
// only its tests do.
func organismSeed(worldSeed, epoch, organismID uint64) int64 {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint64(buf[0:8], worldSeed)
	binary.LittleEndian.PutUint64(buf[8:16], epoch)
	binary.LittleEndian.PutUint64(buf[16:24], organismID)
	return int64(xxhash.Sum64(buf))
}
