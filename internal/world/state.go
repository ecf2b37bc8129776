package world

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/buildsys/server/internal/build"
	"github.com/buildsys/server/internal/component"
	"github.com/buildsys/server/internal/core/ecs"
	"github.com/buildsys/server/internal/core/event"
	"github.com/buildsys/server/internal/data"
)

// State is the headless scene: voxel terrain plus the structures spawned
// into it. It is the spawner, scene and tracer the build controller works
// against. Accessed only from the tick goroutine; no locks.
type State struct {
	ecs        *ecs.World
	terrain    *Terrain
	catalog    *data.StructureCatalog
	bus        *event.Bus
	log        *zap.Logger
	traceDist  float64
	structures *ecs.PtrComponentStore[build.Structure]
	owners     *ecs.PtrComponentStore[component.Owner]
	solids     *SolidGrid
}

func NewState(w *ecs.World, terrain *Terrain, catalog *data.StructureCatalog, bus *event.Bus, traceDist float64, log *zap.Logger) *State {
	s := &State{
		ecs:        w,
		terrain:    terrain,
		catalog:    catalog,
		bus:        bus,
		log:        log,
		traceDist:  traceDist,
		structures: ecs.NewPtrComponentStore[build.Structure](),
		owners:     ecs.NewPtrComponentStore[component.Owner](),
		solids:     NewSolidGrid(),
	}
	w.Registry().Register(s.structures)
	w.Registry().Register(s.owners)
	return s
}

func (s *State) Terrain() *Terrain { return s.terrain }

// Spawn creates a structure of the named kind. Committed structures are
// solid from the moment they exist; previews never collide.
func (s *State) Spawn(kind string, pose component.Transform, placed bool, owner ecs.EntityID) (*build.Structure, error) {
	k, ok := s.catalog.Get(kind)
	if !ok {
		return nil, fmt.Errorf("unknown structure kind %q", kind)
	}
	id := s.ecs.CreateEntity()
	st := build.NewStructure(id, k.Name, build.Visual(k.Mesh), pose, placed, s)
	s.structures.Set(id, st)
	s.owners.Set(id, &component.Owner{Entity: owner})
	if st.Solid() {
		s.solids.Add(id, s.boundsOf(st, k))
	}
	s.log.Debug("structure spawned",
		zap.Uint32("entity", id.Index()),
		zap.String("kind", k.Name),
		zap.Bool("placed", placed),
		zap.Stringer("pose", pose),
	)
	return st, nil
}

// Placed starts tracing against a structure committed after it was
// spawned. Called through Structure.Place.
func (s *State) Placed(st *build.Structure) {
	id := st.ID()
	if !s.ecs.Alive(id) || !st.Solid() {
		return
	}
	k, ok := s.catalog.Get(st.Kind())
	if !ok {
		return
	}
	s.solids.Add(id, s.boundsOf(st, k))
	s.log.Debug("structure placed in scene", zap.Uint32("entity", id.Index()), zap.String("kind", st.Kind()))
}

// Remove takes a structure out of the scene; its entity is released at the
// end of the tick. Called through Structure.Destroy.
func (s *State) Remove(st *build.Structure) {
	id := st.ID()
	if !s.ecs.MarkForDestruction(id) {
		return
	}
	if st.Solid() {
		if k, ok := s.catalog.Get(st.Kind()); ok {
			s.solids.Remove(id, s.boundsOf(st, k))
		}
	}
	event.Emit(s.bus, event.StructureDestroyed{Entity: id, Kind: st.Kind(), Placed: st.Placed()})
	s.log.Debug("structure destroyed", zap.Uint32("entity", id.Index()), zap.String("kind", st.Kind()))
}

// Get returns the live structure for id.
func (s *State) Get(id ecs.EntityID) (*build.Structure, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	return s.structures.Get(id)
}

// Structures returns all live structures ordered by entity index.
func (s *State) Structures() []*build.Structure {
	out := make([]*build.Structure, 0, s.structures.Len())
	s.structures.Each(func(id ecs.EntityID, st *build.Structure) {
		if s.ecs.Alive(id) {
			out = append(out, st)
		}
	})
	sortByIndex(out)
	return out
}

// StructuresOwnedBy returns the live structures spawned by owner.
func (s *State) StructuresOwnedBy(owner ecs.EntityID) []*build.Structure {
	var out []*build.Structure
	ecs.Each2(s.structures, s.owners, func(id ecs.EntityID, st *build.Structure, o *component.Owner) {
		if o.Entity == owner && s.ecs.Alive(id) {
			out = append(out, st)
		}
	})
	sortByIndex(out)
	return out
}

// PlacedCount returns the number of live committed structures.
func (s *State) PlacedCount() int {
	n := 0
	s.structures.Each(func(id ecs.EntityID, st *build.Structure) {
		if st.Placed() && s.ecs.Alive(id) {
			n++
		}
	})
	return n
}

// GroundHeight reports the terrain surface under (x, y).
func (s *State) GroundHeight(x, y float64) (float64, bool) {
	return s.terrain.GroundHeight(x, y)
}

// TraceForward returns the first point along forward, within the trace
// distance, where the ray meets terrain or a solid structure.
func (s *State) TraceForward(origin, forward mgl64.Vec3) (mgl64.Vec3, bool) {
	if forward.Len() == 0 {
		return mgl64.Vec3{}, false
	}
	dir := forward.Normalize()
	end := origin.Add(dir.Mul(s.traceDist))

	best := math.Inf(1)
	if hit := Raycast(origin, end, s.terrain.IsSolid); hit.Hit {
		best = hit.Distance
	}

	minX, maxX := math.Min(origin.X(), end.X()), math.Max(origin.X(), end.X())
	minY, maxY := math.Min(origin.Y(), end.Y()), math.Max(origin.Y(), end.Y())
	for _, id := range s.solids.Query(minX, minY, maxX, maxY) {
		st, ok := s.Get(id)
		if !ok || !st.Solid() {
			continue
		}
		k, ok := s.catalog.Get(st.Kind())
		if !ok {
			continue
		}
		if t, ok := s.boundsOf(st, k).IntersectRay(origin, dir, s.traceDist); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(best)), true
}

func (s *State) boundsOf(st *build.Structure, k *data.StructureKind) AABB {
	pose := st.Pose()
	return FootprintAABB(pose.Position, k.Size(), pose.Rotation.Yaw)
}

func sortByIndex(list []*build.Structure) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID().Index() < list[j].ID().Index()
	})
}
