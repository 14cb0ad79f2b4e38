package collections

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"
)

// ImportLegacyValue seeds key with raw, a JSON array exported from the
// browser storage the previous frontend kept its data in. It never
// overwrites: if the key already holds a value nothing happens and false is
// returned, so it is safe to run on every startup.
func ImportLegacyValue(app core.App, key, raw string) (bool, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return false, fmt.Errorf("migrate: %q is not a JSON array: %w", key, err)
	}

	existing, err := app.FindFirstRecordByFilter(KVEntries, "key = {:key}", map[string]any{"key": key})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("migrate: could not look up %q: %w", key, err)
	}
	if existing != nil && existing.GetString("value") != "" {
		log.WithField("key", key).Info("migrate: key already populated, skipping import")
		return false, nil
	}

	if existing == nil {
		col, err := app.FindCollectionByNameOrId(KVEntries)
		if err != nil {
			return false, fmt.Errorf("migrate: could not find %s collection: %w", KVEntries, err)
		}
		existing = core.NewRecord(col)
		existing.Set("key", key)
	}
	existing.Set("value", raw)
	if err := app.Save(existing); err != nil {
		return false, fmt.Errorf("migrate: could not save %q: %w", key, err)
	}

	log.WithFields(log.Fields{"key": key, "entries": len(entries)}).Info("migrate: imported legacy value")
	return true, nil
}
