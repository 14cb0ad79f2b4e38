package collections_test

import (
	"testing"

	"serviceplus/collections"
	"serviceplus/testhelpers"
)

const legacyQuotes = `[{"id":"1700000000000","serviceId":"workspace-support","serviceName":"Soporte Workspace","customerName":"Acme","planName":"Básico","licenses":10,"selectedAddons":[],"discount":0,"createdAt":"2023-11-14T22:13:20.000Z"}]`

func TestImportLegacyValue_ImportsOnce(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	imported, err := collections.ImportLegacyValue(app, "gtm-quotes", legacyQuotes)
	if err != nil {
		t.Fatalf("ImportLegacyValue() error: %v", err)
	}
	if !imported {
		t.Fatal("expected first import to write the value")
	}

	imported, err = collections.ImportLegacyValue(app, "gtm-quotes", `[]`)
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if imported {
		t.Error("second import must not overwrite an existing value")
	}

	records, err := app.FindAllRecords(collections.KVEntries)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 kv record, got %d", len(records))
	}
	if records[0].GetString("value") != legacyQuotes {
		t.Errorf("stored value = %q", records[0].GetString("value"))
	}
}

func TestImportLegacyValue_RejectsNonArray(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	for _, raw := range []string{"", "{}", `{"id":"1"}`, "not json"} {
		if _, err := collections.ImportLegacyValue(app, "gtm-quotes", raw); err == nil {
			t.Errorf("ImportLegacyValue(%q) expected error", raw)
		}
	}

	records, _ := app.FindAllRecords(collections.KVEntries)
	if len(records) != 0 {
		t.Errorf("invalid input created %d records", len(records))
	}
}
