package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"
)

// KVEntries is the collection backing the string-keyed store: one record
// per key, the value kept verbatim in a text field.
const KVEntries = "kv_entries"

// maxValueLength bounds a stored value; the quote history is one JSON array.
const maxValueLength = 1 << 24

// Setup programmatically creates/ensures the kv_entries collection exists.
func Setup(app core.App) error {
	_, err := ensureCollection(app, KVEntries, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true, Max: 255})
		c.Fields.Add(&core.TextField{Name: "value", Max: maxValueLength})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_kv_entries_key", true, "`key`", "")
	})
	return err
}

func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.WithField("collection", name).Debug("collection already exists, skipping creation")
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.WithFields(log.Fields{"collection": name, "id": collection.Id}).Info("created collection")
	return collection, nil
}
