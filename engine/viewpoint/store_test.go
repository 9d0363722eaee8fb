package viewpoint

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	name             string
	position, target common.Point3
	active           bool
}

type fakeSink struct {
	next    scene.NodeID
	markers map[scene.NodeID]*fakeMarker
}

func newFakeSink() *fakeSink {
	return &fakeSink{markers: make(map[scene.NodeID]*fakeMarker)}
}

func (f *fakeSink) AttachMarkers(name string, position, target common.Point3, active bool) scene.NodeID {
	f.next++
	f.markers[f.next] = &fakeMarker{name: name, position: position, target: target, active: active}
	return f.next
}

func (f *fakeSink) UpdateMarkers(id scene.NodeID, position, target common.Point3) {
	f.markers[id].position = position
	f.markers[id].target = target
}

func (f *fakeSink) SetMarkersActive(id scene.NodeID, active bool) {
	f.markers[id].active = active
}

func (f *fakeSink) DetachMarkers(id scene.NodeID) {
	delete(f.markers, id)
}

func (f *fakeSink) activeCount() int {
	n := 0
	for _, m := range f.markers {
		if m.active {
			n++
		}
	}
	return n
}

func TestAddDerivesCoordinates(t *testing.T) {
	sink := newFakeSink()
	s := NewStore(WithMarkerSink(sink))

	_, ok := s.CurrentIndex()
	assert.False(t, ok)

	assert.Equal(t, 0, s.Add(nil, nil))
	vp, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, common.P3(600, -250, 1850), vp.Position)
	assert.Equal(t, common.P3(400, -250, 1850), vp.Target)
	assert.Equal(t, "Helper Group 1", vp.Name)

	pos, tgt := common.P3(1, 2, 3), common.P3(4, 5, 6)
	assert.Equal(t, 1, s.Add(&pos, &tgt))
	assert.Equal(t, 2, s.Add(nil, nil))
	vp, err = s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, common.P3(1, 152, 3), vp.Position)
	assert.Equal(t, common.P3(4, 155, 6), vp.Target)
	assert.Equal(t, "Helper Group 3", vp.Name)

	idx, ok := s.CurrentIndex()
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Len(t, sink.markers, 3)
	assert.Equal(t, 1, sink.activeCount())
	assert.True(t, sink.markers[vp.Markers].active)
}

func TestNavigation(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Previous())
	assert.False(t, s.Next())

	for range 3 {
		s.Add(nil, nil)
	}
	assert.False(t, s.Next(), "already on the last viewpoint")
	assert.True(t, s.Previous())
	assert.True(t, s.Previous())
	assert.False(t, s.Previous(), "already on the first viewpoint")
	idx, _ := s.CurrentIndex()
	assert.Equal(t, 0, idx)

	assert.True(t, s.Next())
	idx, _ = s.CurrentIndex()
	assert.Equal(t, 1, idx)

	assert.True(t, s.Select(2))
	assert.False(t, s.Select(3))
	assert.False(t, s.Select(-1))
	idx, _ = s.CurrentIndex()
	assert.Equal(t, 2, idx)
}

func TestRemoveClampsCursor(t *testing.T) {
	sink := newFakeSink()
	s := NewStore(WithMarkerSink(sink))
	for range 3 {
		s.Add(nil, nil)
	}

	assert.False(t, s.Remove(3))
	assert.False(t, s.Remove(-1))

	// removing before the cursor keeps the cursor index
	s.Select(1)
	require.True(t, s.Remove(0))
	idx, _ := s.CurrentIndex()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, s.Len())

	require.True(t, s.RemoveCurrent())
	idx, ok := s.CurrentIndex()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, sink.activeCount())

	require.True(t, s.RemoveCurrent())
	_, ok = s.CurrentIndex()
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)
	assert.False(t, s.RemoveCurrent())
	assert.Empty(t, sink.markers)
}

func TestUpdate(t *testing.T) {
	sink := newFakeSink()
	s := NewStore(WithMarkerSink(sink))

	assert.False(t, s.UpdateCurrent(common.P3(1, 1, 1), common.P3(0, 0, 0)))
	assert.ErrorIs(t, s.Update(0, common.P3(1, 1, 1), common.P3(0, 0, 0)), ErrIndexOutOfRange)
	_, err := s.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	s.Add(nil, nil)
	s.Add(nil, nil)
	require.True(t, s.UpdateCurrent(common.P3(10, 20, 30), common.P3(1, 2, 3)))
	require.NoError(t, s.Update(0, common.P3(-10, -20, -30), common.P3(-1, -2, -3)))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, common.P3(10, 20, 30), cur.Position)
	assert.Equal(t, common.P3(1, 2, 3), sink.markers[cur.Markers].target)

	first, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, common.P3(-10, -20, -30), sink.markers[first.Markers].position)
}

func TestSerializeRoundTrip(t *testing.T) {
	s := NewStore()
	s.LoadDefaults()

	data, err := s.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"markers":{"sphereRadius":50,"cubeSize":32}`)
	assert.Contains(t, string(data), `"position":{"x":600,"y":-250,"z":1850}`)

	sink := newFakeSink()
	other := NewStore(WithMarkerSink(sink))
	other.Deserialize(data)
	assert.Equal(t, s.All(), stripMarkers(other.All()))
	idx, ok := other.CurrentIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Len(t, sink.markers, 3)
	assert.Equal(t, 1, sink.activeCount())
}

func stripMarkers(vps []Viewpoint) []Viewpoint {
	for i := range vps {
		vps[i].Markers = 0
	}
	return vps
}

func TestDeserializeLegacyCollection(t *testing.T) {
	legacy := `[{"group":{"object":{"type":"Group","name":"Helper Group 2","children":[]}},` +
		`"position":{"x":600,"y":-250,"z":1850},"target":{"x":400,"y":-250,"z":1850}},` +
		`{"position":{"x":-600,"y":-200,"z":1350},"target":{"x":-400,"y":-150,"z":1350}}]`

	s := NewStore()
	s.Deserialize([]byte(legacy))
	require.Equal(t, 2, s.Len())
	vps := s.All()
	assert.Equal(t, "Helper Group 2", vps[0].Name)
	assert.Equal(t, "Helper Group 2", vps[1].Name)
	assert.Equal(t, common.P3(-400, -150, 1350), vps[1].Target)
}

func TestDeserializeCorruptData(t *testing.T) {
	var buf bytes.Buffer
	sink := newFakeSink()
	s := NewStore(WithMarkerSink(sink), WithLogger(zerolog.New(&buf)))
	s.Add(nil, nil)

	s.Deserialize([]byte(`[{"position":`))
	assert.Equal(t, 0, s.Len())
	_, ok := s.CurrentIndex()
	assert.False(t, ok)
	assert.Empty(t, sink.markers)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestSaveLoad(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore()
	assert.False(t, s.Load(kv))

	s.Add(nil, nil)
	s.Add(nil, nil)
	require.NoError(t, s.Save(kv))

	raw, err := kv.Get(storage.KeyViewpoints)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	other := NewStore()
	require.True(t, other.Load(kv))
	assert.Equal(t, s.All(), other.All())
	idx, ok := other.CurrentIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx, "cursor starts on the first loaded viewpoint")
}

func TestLoadDefaults(t *testing.T) {
	s := NewStore()
	s.Add(nil, nil)
	s.LoadDefaults()
	require.Equal(t, 3, s.Len())
	vps := s.All()
	assert.Equal(t, common.P3(600, 400, 1350), vps[1].Position)
	assert.Equal(t, common.P3(-400, -150, 1350), vps[2].Target)
}

func TestModes(t *testing.T) {
	s := NewStore()
	assert.Equal(t, ModePositions, s.Mode())
	assert.Equal(t, ModeEditor, s.NextMode())
	assert.Equal(t, ModePositions, s.NextMode())

	s = NewStore(WithModes(ModeHidden, "bogus", ModePositions, ModeEditor))
	assert.Equal(t, ModeHidden, s.Mode())
	assert.Equal(t, ModePositions, s.NextMode())
	assert.Equal(t, ModeEditor, s.NextMode())
	assert.Equal(t, ModeHidden, s.NextMode())

	s = NewStore(WithModes("bogus"))
	assert.Equal(t, ModePositions, s.Mode())

	assert.True(t, ModeEditor.ShowsPath())
	assert.False(t, ModePositions.ShowsPath())
	assert.True(t, ModePositions.ShowsMarkers())
	assert.False(t, ModeHidden.ShowsMarkers())
}

func TestStoreDrivesScene(t *testing.T) {
	sc := scene.NewScene("viewpoints")
	s := NewStore(WithMarkerSink(sc))
	s.Add(nil, nil)
	s.Add(nil, nil)
	assert.Greater(t, sc.Count(), 0)
	s.LoadDefaults()
	s.Deserialize([]byte(`[]`))
	assert.Equal(t, 0, sc.Count())
}
