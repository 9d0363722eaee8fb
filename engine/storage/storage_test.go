package storage

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openBackends(t *testing.T) map[string]KV {
	t.Helper()
	sq, err := NewSqlite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	return map[string]KV{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestKVOperations(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set("a", []byte(`{"x":1}`)))
			got, err := kv.Get("a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"x":1}`, string(got))

			// the returned slice is a copy
			got[0] = '['
			again, err := kv.Get("a")
			require.NoError(t, err)
			assert.Equal(t, byte('{'), again[0])

			require.NoError(t, kv.Set("a", []byte(`2`)))
			got, err = kv.Get("a")
			require.NoError(t, err)
			assert.Equal(t, "2", string(got))

			require.NoError(t, kv.Delete("a"))
			_, err = kv.Get("a")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NoError(t, kv.Delete("never-set"))

			require.NoError(t, kv.Close())
			_, err = kv.Get("a")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, kv.Set("a", []byte("1")), ErrClosed)
			assert.ErrorIs(t, kv.Delete("a"), ErrClosed)
		})
	}
}

func TestSqlitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	kv, err := NewSqlite(path, WithWorkers(3))
	require.NoError(t, err)
	require.NoError(t, kv.Set("keep", []byte(`"kept"`)))
	require.NoError(t, kv.Set("drop", []byte(`1`)))
	for i := range 20 {
		require.NoError(t, kv.Set("counter", []byte{byte('0' + i%10)}))
	}
	require.NoError(t, kv.Delete("drop"))
	require.NoError(t, kv.Close())

	kv, err = NewSqlite(path)
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get("keep")
	require.NoError(t, err)
	assert.Equal(t, `"kept"`, string(got))

	got, err = kv.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, "9", string(got))

	_, err = kv.Get("drop")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSqliteReopensWithSavedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	bounds := common.Bounds{
		X: common.Range{Min: -500, Max: 500},
		Y: common.Range{Min: -800, Max: 800},
		Z: common.Range{Min: 0, Max: 2000},
	}

	kv, err := NewSqlite(path)
	require.NoError(t, err)
	require.NoError(t, SaveCamera(kv, common.P3(3200, 1700, 2400), common.P3(0, 0, 1000)))
	require.NoError(t, SaveDistance(kv, common.Range{Min: 500, Max: 6000}))
	require.NoError(t, SaveBounds(kv, bounds))
	require.NoError(t, kv.Close())

	kv, err = NewSqlite(path)
	require.NoError(t, err)
	defer kv.Close()

	d := LoadDefaults(kv, zerolog.Nop())
	r, ok := d.Distance()
	require.True(t, ok)
	assert.Equal(t, common.Range{Min: 500, Max: 6000}, r)
	require.NotNil(t, d.CameraPosition)
	assert.Equal(t, common.P3(3200, 1700, 2400), *d.CameraPosition)
	require.NotNil(t, d.PanBounds)
	assert.Equal(t, bounds, *d.PanBounds)
}

func TestSqliteSkipsUnreadableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	kv, err := NewSqlite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("good", []byte(`{"ok":true}`)))
	require.NoError(t, kv.Close())

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("INSERT INTO storage_entries (key, value, updated_at) VALUES (?, ?, ?)", "bad", []byte("{not json"), time.Now()).Error)
	require.NoError(t, db.Exec("INSERT INTO storage_entries (key, value, updated_at) VALUES (?, ?, ?)", "number", 42, time.Now()).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	var buf bytes.Buffer
	kv, err = NewSqlite(path, WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get("good")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got))

	got, err = kv.Get("number")
	require.NoError(t, err)
	assert.Equal(t, "42", string(got))

	_, err = kv.Get("bad")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, buf.String(), "skipping storage entry that is not JSON")
}

func TestSqliteWritesAfterCloseAreRejected(t *testing.T) {
	kv, err := NewSqlite(filepath.Join(t.TempDir(), "kv.db"), WithWorkers(2))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 200 {
			if err := kv.Set("k", []byte{byte('0' + i%10)}); err != nil {
				assert.ErrorIs(t, err, ErrClosed)
				return
			}
		}
	}()
	assert.NoError(t, kv.Close())
	<-done
}

func TestSqliteFlush(t *testing.T) {
	kv, err := NewSqlite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer kv.Close()

	f, ok := kv.(Flusher)
	require.True(t, ok)
	require.NoError(t, kv.Set("k", []byte(`true`)))
	assert.NoError(t, f.Flush())
}

func TestOpen(t *testing.T) {
	kv, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.NoError(t, kv.Close())

	kv, err = Open(DriverSqlite, filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	assert.NoError(t, kv.Close())

	_, err = Open("postgres", "")
	assert.Error(t, err)
	assert.False(t, Driver("postgres").Valid())
	assert.True(t, DriverSqlite.Valid())
}

func TestDefaultsRoundTrip(t *testing.T) {
	kv := NewMemory()
	logger := zerolog.Nop()

	d := LoadDefaults(kv, logger)
	assert.Nil(t, d.CameraPosition)
	assert.Nil(t, d.PanBounds)
	_, ok := d.Distance()
	assert.False(t, ok)

	bounds := common.Bounds{
		X: common.Range{Min: -500, Max: 500},
		Y: common.Range{Min: -800, Max: 800},
		Z: common.Range{Min: 0, Max: 2000},
	}
	require.NoError(t, SaveCamera(kv, common.P3(3200, 1700, 2400), common.P3(0, 0, 1000)))
	require.NoError(t, SaveDistance(kv, common.Range{Min: 500, Max: 4000}))
	require.NoError(t, SaveBounds(kv, bounds))

	raw, err := kv.Get(KeyCameraPosition)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":3200,"y":1700,"z":2400}`, string(raw))
	raw, err = kv.Get(KeyPanBounds)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":{"min":-500,"max":500},"y":{"min":-800,"max":800},"z":{"min":0,"max":2000}}`, string(raw))

	d = LoadDefaults(kv, logger)
	require.NotNil(t, d.CameraPosition)
	require.NotNil(t, d.CameraTarget)
	assert.Equal(t, common.P3(3200, 1700, 2400), *d.CameraPosition)
	assert.Equal(t, common.P3(0, 0, 1000), *d.CameraTarget)
	r, ok := d.Distance()
	assert.True(t, ok)
	assert.Equal(t, common.Range{Min: 500, Max: 4000}, r)
	require.NotNil(t, d.PanBounds)
	assert.Equal(t, bounds, *d.PanBounds)

	require.NoError(t, DeleteCamera(kv))
	require.NoError(t, DeleteDistance(kv))
	require.NoError(t, DeleteBounds(kv))
	d = LoadDefaults(kv, logger)
	assert.Nil(t, d.CameraPosition)
	assert.Nil(t, d.CameraTarget)
	assert.Nil(t, d.MinDistance)
	assert.Nil(t, d.PanBounds)
}

func TestLoadDefaultsMalformed(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.Set(KeyPanBounds, []byte(`{"x":`)))
	require.NoError(t, kv.Set(KeyMinDistance, []byte(`"abc"`)))
	require.NoError(t, SaveCamera(kv, common.P3(1, 2, 3), common.P3(4, 5, 6)))

	var buf bytes.Buffer
	d := LoadDefaults(kv, zerolog.New(&buf))

	assert.Nil(t, d.PanBounds)
	assert.Nil(t, d.MinDistance)
	require.NotNil(t, d.CameraPosition)
	assert.Equal(t, common.P3(1, 2, 3), *d.CameraPosition)

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, KeyPanBounds)
	assert.Contains(t, out, KeyMinDistance)
}
