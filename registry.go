package physbench

import (
	"math"
	"reflect"
	"slices"
	"sync/atomic"
	"unsafe"
)

// MaxComponentTypes is the number of distinct component types one Registry
// can hold.
const MaxComponentTypes = 256

// ChunkSize is the number of rows stored per archetype chunk.
const ChunkSize = 1024

// Entity identifies a row in a Registry. IDs are dense and assigned in
// creation order; Serial names the registry that created the entity, so
// entities from different registries never compare equal.
type Entity struct {
	// ID is unique within the owning registry.
	ID uint32
	// Serial is the owning registry's serial number.
	Serial uint32
}

// registrySerial hands out registry serials. Zero is never used so the zero
// Entity is invalid everywhere.
var registrySerial atomic.Uint32

// entityRecord is where an entity currently lives.
type entityRecord struct {
	archetypeIndex int // index in Registry.archetypes
	chunkIndex     int // index in archetype.chunks
	row            int // position inside the chunk
}

// compSpec bundles a component type's ID, reflect.Type and size.
type compSpec struct {
	typ  reflect.Type
	size uintptr
	id   uint8
}

// chunk holds fixed-size column storage for ChunkSize rows.
type chunk struct {
	entities [ChunkSize]Entity
	columns  [MaxComponentTypes]unsafe.Pointer
	size     int
}

// at returns the address of row in the column for component id.
func (c *chunk) at(id uint8, size uintptr, row int) unsafe.Pointer {
	return unsafe.Add(c.columns[id], uintptr(row)*size)
}

// cell returns the raw bytes of one component value.
func (c *chunk) cell(sp compSpec, row int) []byte {
	return unsafe.Slice((*byte)(c.at(sp.id, sp.size, row)), sp.size)
}

// archetype stores every entity that has exactly the components in mask.
type archetype struct {
	chunks []*chunk
	specs  []compSpec // sorted by component ID
	sizes  [MaxComponentTypes]uintptr
	mask   bitmask256
	index  int // position in Registry.archetypes
	size   int // rows across all chunks
}

// componentTypes maps Go types to registry-local component IDs.
type componentTypes struct {
	byType map[reflect.Type]uint8
	specs  [MaxComponentTypes]compSpec
	next   uint16
}

// ArchetypeInfo describes one populated archetype.
type ArchetypeInfo struct {
	// Components holds the component type names, sorted.
	Components []string
	// Entities is the number of rows in the archetype.
	Entities int
}

// Registry owns entities and their components. It is not safe for concurrent
// use; one goroutine owns a Registry from NewRegistry to Destroy.
type Registry struct {
	source           *Source
	joins            joinCache
	byMask           map[bitmask256]int
	components       componentTypes
	archetypes       []*archetype
	records          []entityRecord // indexed by Entity.ID
	archetypeVersion uint32         // bumped whenever an archetype is created
	serial           uint32
	join             JoinStrategy
	destroyed        bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithCapacity preallocates bookkeeping for n entities.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.records = make([]entityRecord, 0, n)
		}
	}
}

// WithSeed makes Populate draw from a deterministic Source.
func WithSeed(seed uint64) Option {
	return func(r *Registry) {
		r.source = NewSource(seed)
	}
}

// WithSource makes Populate draw from src.
func WithSource(src *Source) Option {
	return func(r *Registry) {
		r.source = src
	}
}

// WithJoin selects how the physics steps find their match sets.
func WithJoin(j JoinStrategy) Option {
	return func(r *Registry) {
		r.join = j
	}
}

// NewRegistry creates an empty Registry holding only the component-less
// archetype. Entities receive IDs in creation order and carry the registry's
// serial, so entities from two registries never compare equal.
//
// Without WithSeed or WithSource, Populate draws from a runtime-seeded Source.
// The physics steps use JoinArchetype unless WithJoin says otherwise.
//
// Parameters:
//   - opts: Options applied in order before the registry is used.
//
// Returns:
//   - The newly created Registry, owned by the calling goroutine until Destroy.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		serial: registrySerial.Add(1),
		components: componentTypes{
			byType: make(map[reflect.Type]uint8, 8),
		},
		byMask:     make(map[bitmask256]int, 8),
		archetypes: make([]*archetype, 0, 8),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.source == nil {
		r.source = NewRandomSource()
	}
	r.archetypeFor(bitmask256{}, nil)
	return r
}

// Destroy releases all storage owned by the registry. Any later call on the
// registry, its builders or its filters panics.
func (r *Registry) Destroy() {
	r.mustBeAlive()
	r.archetypes = nil
	r.byMask = nil
	r.records = nil
	r.components = componentTypes{}
	r.joins = joinCache{}
	r.source = nil
	r.destroyed = true
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	r.mustBeAlive()
	return len(r.records)
}

// Entities returns every entity in ID order.
func (r *Registry) Entities() []Entity {
	r.mustBeAlive()
	ents := make([]Entity, len(r.records))
	for i := range ents {
		ents[i] = Entity{ID: uint32(i), Serial: r.serial}
	}
	return ents
}

// Join returns the strategy used by the physics steps.
func (r *Registry) Join() JoinStrategy {
	return r.join
}

// Archetypes lists every archetype that holds at least one entity, in
// creation order.
func (r *Registry) Archetypes() []ArchetypeInfo {
	r.mustBeAlive()
	infos := make([]ArchetypeInfo, 0, len(r.archetypes))
	for _, a := range r.archetypes {
		if a.size == 0 {
			continue
		}
		names := make([]string, len(a.specs))
		for i, sp := range a.specs {
			names[i] = sp.typ.Name()
		}
		slices.Sort(names)
		infos = append(infos, ArchetypeInfo{Components: names, Entities: a.size})
	}
	return infos
}

// CreateEntity creates an entity with no components.
func (r *Registry) CreateEntity() Entity {
	r.mustBeAlive()
	var ent Entity
	r.spawn(r.archetypes[0], 1, func(c *chunk, row int) {
		ent = c.entities[row]
	})
	return ent
}

// IsValid reports whether e was created by this registry.
func (r *Registry) IsValid(e Entity) bool {
	return !r.destroyed && e.Serial == r.serial && int(e.ID) < len(r.records)
}

func (r *Registry) mustBeAlive() {
	if r.destroyed {
		panic("ecs: registry used after destroy")
	}
}

// componentID registers or fetches the component ID for t.
func (r *Registry) componentID(t reflect.Type) uint8 {
	if id, ok := r.components.byType[t]; ok {
		return id
	}
	if r.components.next >= MaxComponentTypes {
		panic("ecs: too many component types")
	}
	id := uint8(r.components.next)
	r.components.byType[t] = id
	r.components.specs[id] = compSpec{typ: t, size: t.Size(), id: id}
	r.components.next++
	return id
}

// lookupID returns the component ID for t without registering it.
func (r *Registry) lookupID(t reflect.Type) (uint8, bool) {
	id, ok := r.components.byType[t]
	return id, ok
}

// archetypeFor returns the archetype for mask, creating it from specs if it
// does not exist yet.
func (r *Registry) archetypeFor(mask bitmask256, specs []compSpec) *archetype {
	if idx, ok := r.byMask[mask]; ok {
		return r.archetypes[idx]
	}
	a := &archetype{
		index:  len(r.archetypes),
		mask:   mask,
		chunks: make([]*chunk, 0, 4),
		specs:  slices.Clone(specs),
	}
	slices.SortFunc(a.specs, func(x, y compSpec) int { return int(x.id) - int(y.id) })
	for _, sp := range a.specs {
		a.sizes[sp.id] = sp.size
	}
	r.archetypes = append(r.archetypes, a)
	r.byMask[mask] = a.index
	r.archetypeVersion++
	return a
}

// archetypeWith returns the archetype of a plus component id.
func (r *Registry) archetypeWith(a *archetype, id uint8) *archetype {
	mask := a.mask.with(id)
	if idx, ok := r.byMask[mask]; ok {
		return r.archetypes[idx]
	}
	specs := make([]compSpec, 0, len(a.specs)+1)
	specs = append(specs, a.specs...)
	specs = append(specs, r.components.specs[id])
	return r.archetypeFor(mask, specs)
}

// newChunk allocates one column of ChunkSize values per component of a.
func (r *Registry) newChunk(a *archetype) *chunk {
	c := &chunk{}
	for _, sp := range a.specs {
		col := reflect.MakeSlice(reflect.SliceOf(sp.typ), ChunkSize, ChunkSize)
		c.columns[sp.id] = col.UnsafePointer()
	}
	return c
}

// tail returns the last chunk of a that still has free rows, appending a new
// chunk if needed.
func (r *Registry) tail(a *archetype) *chunk {
	if len(a.chunks) == 0 || a.chunks[len(a.chunks)-1].size == ChunkSize {
		a.chunks = append(a.chunks, r.newChunk(a))
	}
	return a.chunks[len(a.chunks)-1]
}

// spawn creates count entities in a, filling one chunk at a time. init is
// called for every new row after the entity has been placed.
func (r *Registry) spawn(a *archetype, count int, init func(c *chunk, row int)) {
	if uint64(len(r.records))+uint64(count) > math.MaxUint32 {
		panic("ecs: entity capacity exhausted")
	}
	r.records = slices.Grow(r.records, count)
	remaining := count
	for remaining > 0 {
		c := r.tail(a)
		batch := min(ChunkSize-c.size, remaining)
		chunkIndex := len(a.chunks) - 1
		start := c.size
		for k := range batch {
			row := start + k
			ent := Entity{ID: uint32(len(r.records)), Serial: r.serial}
			r.records = append(r.records, entityRecord{
				archetypeIndex: a.index,
				chunkIndex:     chunkIndex,
				row:            row,
			})
			c.entities[row] = ent
			for _, sp := range a.specs {
				clear(c.cell(sp, row))
			}
			c.size++
			a.size++
			if init != nil {
				init(c, row)
			}
		}
		remaining -= batch
	}
}

// move relocates e from its archetype into target, copying every component
// the two archetypes share, and returns the new chunk and row.
//
// Archetypes stay dense: the hole e leaves behind is filled with the
// archetype's very last row, so only the final chunk is ever partly full and
// it is dropped once it runs empty.
func (r *Registry) move(e Entity, target *archetype) (*chunk, int) {
	rec := &r.records[e.ID]
	src := r.archetypes[rec.archetypeIndex]
	from := src.chunks[rec.chunkIndex]

	to := r.tail(target)
	row := to.size
	to.entities[row] = e
	to.size++
	target.size++
	for _, sp := range src.specs {
		if target.mask.containsBit(sp.id) {
			copy(to.cell(sp, row), from.cell(sp, rec.row))
		}
	}

	lastChunk := src.chunks[len(src.chunks)-1]
	lastRow := lastChunk.size - 1
	if filler := lastChunk.entities[lastRow]; filler != e {
		from.entities[rec.row] = filler
		for _, sp := range src.specs {
			copy(from.cell(sp, rec.row), lastChunk.cell(sp, lastRow))
		}
		r.records[filler.ID].chunkIndex = rec.chunkIndex
		r.records[filler.ID].row = rec.row
	}
	lastChunk.size--
	src.size--
	if lastChunk.size == 0 {
		src.chunks[len(src.chunks)-1] = nil
		src.chunks = src.chunks[:len(src.chunks)-1]
	}

	rec.archetypeIndex = target.index
	rec.chunkIndex = len(target.chunks) - 1
	rec.row = row
	return to, row
}
