package viewpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/storage"
	"github.com/rs/zerolog"
)

// ErrIndexOutOfRange is returned by Get and Update for an index outside the collection.
var ErrIndexOutOfRange = errors.New("viewpoint: index out of range")

// Store is the ordered collection of viewpoints with a cursor on the current one.
// Navigation past either end is a no-op, never an error. Every change recolors the markers so that only the
// current viewpoint is drawn in the active color.
type Store interface {
	// Add appends a viewpoint and makes it current.
	// A nil position or target is derived from the last viewpoint (or FirstPosition / FirstTarget when the store
	// is empty) shifted by AddOffset.
	//
	// Parameters:
	//   - position: the camera position, or nil
	//   - target: the look target, or nil
	//
	// Returns:
	//   - int: the index of the new viewpoint
	Add(position, target *common.Point3) int

	// Remove deletes the viewpoint at index. The cursor keeps its index, clamped to the new last element, and
	// becomes unset when the store empties.
	//
	// Parameters:
	//   - index: the viewpoint to remove
	//
	// Returns:
	//   - bool: false if index is out of range
	Remove(index int) bool

	// RemoveCurrent removes the current viewpoint.
	//
	// Returns:
	//   - bool: false if there is no current viewpoint
	RemoveCurrent() bool

	// Previous moves the cursor one step back.
	//
	// Returns:
	//   - bool: false if the cursor is unset or already on the first viewpoint
	Previous() bool

	// Next moves the cursor one step forward.
	//
	// Returns:
	//   - bool: false if the cursor is unset or already on the last viewpoint
	Next() bool

	// Select moves the cursor to index.
	//
	// Returns:
	//   - bool: false if index is out of range
	Select(index int) bool

	// Update replaces the position and target of the viewpoint at index.
	//
	// Returns:
	//   - error: ErrIndexOutOfRange if index is outside the collection
	Update(index int, position, target common.Point3) error

	// UpdateCurrent replaces the position and target of the current viewpoint.
	//
	// Returns:
	//   - bool: false if there is no current viewpoint
	UpdateCurrent(position, target common.Point3) bool

	// Get returns the viewpoint at index.
	//
	// Returns:
	//   - Viewpoint: a copy of the viewpoint
	//   - error: ErrIndexOutOfRange if index is outside the collection
	Get(index int) (Viewpoint, error)

	// Current returns the viewpoint under the cursor.
	Current() (Viewpoint, bool)

	// CurrentIndex returns the cursor, or false when it is unset.
	CurrentIndex() (int, bool)

	// Len returns the number of viewpoints.
	Len() int

	// All returns a copy of every viewpoint in order.
	All() []Viewpoint

	// Serialize encodes the collection as a JSON array.
	//
	// Returns:
	//   - []byte: the encoded collection
	//   - error: if encoding fails
	Serialize() ([]byte, error)

	// Deserialize replaces the collection with the decoded data. Data that cannot be decoded is logged as a
	// warning and leaves the store empty. The cursor is set to the first viewpoint if there is one.
	//
	// Parameters:
	//   - data: a JSON array produced by Serialize
	Deserialize(data []byte)

	// Save writes the serialized collection under storage.KeyViewpoints.
	Save(kv storage.KV) error

	// Load replaces the collection with the one stored under storage.KeyViewpoints.
	//
	// Returns:
	//   - bool: false if nothing is stored, in which case the collection is unchanged
	Load(kv storage.KV) bool

	// LoadDefaults replaces the collection with Defaults().
	LoadDefaults()

	// NextMode advances to the next editor display mode and returns it.
	NextMode() Mode

	// Mode returns the current editor display mode.
	Mode() Mode
}

type storeImpl struct {
	mu sync.RWMutex

	items  []Viewpoint
	cursor int // -1 when unset

	modes []Mode
	mode  int

	sink   MarkerSink
	logger zerolog.Logger
}

var _ Store = &storeImpl{}

// NewStore creates an empty viewpoint store. The editor mode starts on the first mode of the cycle.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Store: the new store
func NewStore(options ...StoreBuilderOption) Store {
	s := &storeImpl{
		cursor: -1,
		modes:  DefaultModes,
		mode:   -1,
		sink:   nopSink{},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.NextMode()
	return s
}

func (s *storeImpl) Add(position, target *common.Point3) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pos, tgt common.Point3
	if position != nil {
		pos = *position
	} else if n := len(s.items); n > 0 {
		pos = s.items[n-1].Position.Add(AddOffset)
	} else {
		pos = FirstPosition.Add(AddOffset)
	}
	if target != nil {
		tgt = *target
	} else if n := len(s.items); n > 0 {
		tgt = s.items[n-1].Target.Add(AddOffset)
	} else {
		tgt = FirstTarget.Add(AddOffset)
	}

	s.items = append(s.items, s.attach(fmt.Sprintf("Helper Group %d", len(s.items)+1), pos, tgt))
	s.cursor = len(s.items) - 1
	s.recolor()
	return s.cursor
}

func (s *storeImpl) Remove(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(index)
}

func (s *storeImpl) RemoveCurrent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 {
		return false
	}
	return s.remove(s.cursor)
}

func (s *storeImpl) remove(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.sink.DetachMarkers(s.items[index].Markers)
	s.items = append(s.items[:index], s.items[index+1:]...)

	if s.cursor > len(s.items)-1 {
		s.cursor = len(s.items) - 1
	}
	s.recolor()
	return true
}

func (s *storeImpl) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor <= 0 {
		return false
	}
	s.cursor--
	s.recolor()
	return true
}

func (s *storeImpl) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 || s.cursor >= len(s.items)-1 {
		return false
	}
	s.cursor++
	s.recolor()
	return true
}

func (s *storeImpl) Select(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.cursor = index
	s.recolor()
	return true
}

func (s *storeImpl) Update(index int, position, target common.Point3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("update %d of %d: %w", index, len(s.items), ErrIndexOutOfRange)
	}
	s.update(index, position, target)
	return nil
}

func (s *storeImpl) UpdateCurrent(position, target common.Point3) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 {
		return false
	}
	s.update(s.cursor, position, target)
	return true
}

func (s *storeImpl) update(index int, position, target common.Point3) {
	vp := &s.items[index]
	vp.Position = position
	vp.Target = target
	s.sink.UpdateMarkers(vp.Markers, position, target)
}

func (s *storeImpl) Get(index int) (Viewpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.items) {
		return Viewpoint{}, fmt.Errorf("get %d of %d: %w", index, len(s.items), ErrIndexOutOfRange)
	}
	return s.items[index], nil
}

func (s *storeImpl) Current() (Viewpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cursor < 0 {
		return Viewpoint{}, false
	}
	return s.items[s.cursor], true
}

func (s *storeImpl) CurrentIndex() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor, s.cursor >= 0
}

func (s *storeImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *storeImpl) All() []Viewpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Viewpoint, len(s.items))
	copy(out, s.items)
	return out
}

func (s *storeImpl) Serialize() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]record, len(s.items))
	for i, vp := range s.items {
		entries[i] = record{
			Name:     vp.Name,
			Position: vp.Position,
			Target:   vp.Target,
			Markers: &markerRecord{
				SphereRadius: scene.MarkerSphereRadius,
				CubeSize:     scene.MarkerCubeSize,
			},
		}
	}
	return json.Marshal(entries)
}

func (s *storeImpl) Deserialize(data []byte) {
	var entries []record
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn().Err(err).Msg("stored viewpoints could not be decoded, starting with none")
		entries = nil
	}

	vps := make([]Viewpoint, len(entries))
	for i, e := range entries {
		vps[i] = Viewpoint{Name: e.name(i), Position: e.Position, Target: e.Target}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(vps)
}

func (s *storeImpl) Save(kv storage.KV) error {
	data, err := s.Serialize()
	if err != nil {
		return fmt.Errorf("serialize viewpoints: %w", err)
	}
	if err := kv.Set(storage.KeyViewpoints, data); err != nil {
		return fmt.Errorf("save viewpoints: %w", err)
	}
	return nil
}

func (s *storeImpl) Load(kv storage.KV) bool {
	data, err := kv.Get(storage.KeyViewpoints)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().Err(err).Str("key", storage.KeyViewpoints).Msg("failed to read stored viewpoints")
		}
		return false
	}
	s.Deserialize(data)
	return true
}

func (s *storeImpl) LoadDefaults() {
	defaults := Defaults()
	for i := range defaults {
		defaults[i].Name = fmt.Sprintf("Helper Group %d", i+1)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(defaults)
}

func (s *storeImpl) NextMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = (s.mode + 1) % len(s.modes)
	return s.modes[s.mode]
}

func (s *storeImpl) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes[s.mode]
}

// replace swaps the collection, moving markers from the old viewpoints to the new ones.
func (s *storeImpl) replace(vps []Viewpoint) {
	for _, vp := range s.items {
		s.sink.DetachMarkers(vp.Markers)
	}
	s.items = s.items[:0]
	for _, vp := range vps {
		s.items = append(s.items, s.attach(vp.Name, vp.Position, vp.Target))
	}
	s.cursor = -1
	if len(s.items) > 0 {
		s.cursor = 0
	}
	s.recolor()
}

func (s *storeImpl) attach(name string, position, target common.Point3) Viewpoint {
	return Viewpoint{
		Name:     name,
		Position: position,
		Target:   target,
		Markers:  s.sink.AttachMarkers(name, position, target, false),
	}
}

func (s *storeImpl) recolor() {
	for i, vp := range s.items {
		s.sink.SetMarkersActive(vp.Markers, i == s.cursor)
	}
}

// record is the stored form of a viewpoint.
type record struct {
	Name     string        `json:"name"`
	Position common.Point3 `json:"position"`
	Target   common.Point3 `json:"target"`
	Markers  *markerRecord `json:"markers,omitempty"`

	// Group is present in collections written by the browser viewer, which stored the whole marker group.
	Group *struct {
		Object struct {
			Name string `json:"name"`
		} `json:"object"`
	} `json:"group,omitempty"`
}

type markerRecord struct {
	SphereRadius float32 `json:"sphereRadius"`
	CubeSize     float32 `json:"cubeSize"`
}

func (r record) name(i int) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Group != nil && r.Group.Object.Name != "":
		return r.Group.Object.Name
	}
	return fmt.Sprintf("Helper Group %d", i+1)
}
