package storage

import (
	"encoding/json"
	"errors"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/rs/zerolog"
)

// Keys of the persisted entries.
const (
	KeyCameraPosition = "CAM_POS"
	KeyCameraTarget   = "CAM_TARGET"
	KeyMinDistance    = "CAM_MIN_DIST"
	KeyMaxDistance    = "CAM_MAX_DIST"
	KeyPanBounds      = "CAM_BOUNDS"
	KeyViewpoints     = "elements"
)

// Defaults holds the camera settings read at startup. A nil field was absent or unreadable.
type Defaults struct {
	CameraPosition *common.Point3
	CameraTarget   *common.Point3
	MinDistance    *float32
	MaxDistance    *float32
	PanBounds      *common.Bounds
}

// Distance returns the stored distance bounds when both ends are present.
func (d Defaults) Distance() (common.Range, bool) {
	if d.MinDistance == nil || d.MaxDistance == nil {
		return common.Range{}, false
	}
	return common.Range{Min: *d.MinDistance, Max: *d.MaxDistance}, true
}

// LoadDefaults reads every camera default from kv. Entries that are missing are left nil; entries that hold
// malformed JSON are logged and left nil.
//
// Parameters:
//   - kv: the store to read
//   - logger: receives one error event per malformed entry
//
// Returns:
//   - Defaults: whatever could be read
func LoadDefaults(kv KV, logger zerolog.Logger) Defaults {
	var d Defaults
	d.CameraPosition = readJSON[common.Point3](kv, KeyCameraPosition, logger)
	d.CameraTarget = readJSON[common.Point3](kv, KeyCameraTarget, logger)
	d.MinDistance = readJSON[float32](kv, KeyMinDistance, logger)
	d.MaxDistance = readJSON[float32](kv, KeyMaxDistance, logger)
	d.PanBounds = readJSON[common.Bounds](kv, KeyPanBounds, logger)
	return d
}

func readJSON[T any](kv KV, key string, logger zerolog.Logger) *T {
	raw, err := kv.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Str("key", key).Msg("failed to read stored value")
		}
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("stored value is not valid JSON, ignoring it")
		return nil
	}
	return v
}

func writeJSON(kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(key, raw)
}

// SaveCamera stores the camera position and look target as the startup placement.
func SaveCamera(kv KV, position, target common.Point3) error {
	if err := writeJSON(kv, KeyCameraPosition, position); err != nil {
		return err
	}
	return writeJSON(kv, KeyCameraTarget, target)
}

// DeleteCamera removes the stored startup placement.
func DeleteCamera(kv KV) error {
	return errors.Join(kv.Delete(KeyCameraPosition), kv.Delete(KeyCameraTarget))
}

// SaveDistance stores the camera distance bounds.
func SaveDistance(kv KV, r common.Range) error {
	if err := writeJSON(kv, KeyMinDistance, r.Min); err != nil {
		return err
	}
	return writeJSON(kv, KeyMaxDistance, r.Max)
}

// DeleteDistance removes the stored distance bounds.
func DeleteDistance(kv KV) error {
	return errors.Join(kv.Delete(KeyMinDistance), kv.Delete(KeyMaxDistance))
}

// SaveBounds stores the pan bounds.
func SaveBounds(kv KV, b common.Bounds) error {
	return writeJSON(kv, KeyPanBounds, b)
}

// DeleteBounds removes the stored pan bounds.
func DeleteBounds(kv KV) error {
	return kv.Delete(KeyPanBounds)
}
