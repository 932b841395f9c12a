package models

import (
	"reflect"
	"testing"
)

func TestJSONMapRoundTrip(t *testing.T) {
	original := JSONMap{
		"login": "alice",
		"scopes": []interface{}{
			"repo",
			"user:email",
		},
		"profile": map[string]interface{}{
			"id":       float64(42),
			"verified": true,
			"nested": map[string]interface{}{
				"deep": nil,
			},
		},
		"expires": float64(3600),
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	text, ok := value.(string)
	if !ok {
		t.Fatalf("Value should produce a text column value, got %T", value)
	}

	var decoded JSONMap
	if err := decoded.Scan(text); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if !reflect.DeepEqual(map[string]interface{}(decoded), map[string]interface{}(original)) {
		t.Errorf("Round trip mismatch:\n got %#v\nwant %#v", decoded, original)
	}
}

func TestJSONMapNilHandling(t *testing.T) {
	var m JSONMap

	value, err := m.Value()
	if err != nil {
		t.Fatalf("Value of nil map failed: %v", err)
	}
	if value != nil {
		t.Errorf("Nil map should store SQL NULL, got %v", value)
	}

	var decoded JSONMap
	if err := decoded.Scan(nil); err != nil {
		t.Fatalf("Scan of NULL failed: %v", err)
	}
	if decoded != nil {
		t.Errorf("NULL should decode to a nil map, got %v", decoded)
	}
}

func TestJSONMapScanMalformed(t *testing.T) {
	var decoded JSONMap
	if err := decoded.Scan("{not json"); err == nil {
		t.Error("Malformed text should propagate a parse error")
	}
	if err := decoded.Scan(42); err == nil {
		t.Error("Unsupported scan source should be an error")
	}
}

func TestJSONMapScanBytes(t *testing.T) {
	var decoded JSONMap
	if err := decoded.Scan([]byte(`{"a":1}`)); err != nil {
		t.Fatalf("Scan of []byte failed: %v", err)
	}
	if decoded["a"] != float64(1) {
		t.Errorf("Scan of []byte produced %v", decoded)
	}
}

func TestJSONMapMerge(t *testing.T) {
	m := JSONMap{"a": "1", "b": float64(2)}

	if changed := m.Merge(map[string]interface{}{"a": "1", "b": float64(2)}); changed {
		t.Error("Merging identical entries should report no change")
	}
	if changed := m.Merge(nil); changed {
		t.Error("Merging nothing should report no change")
	}

	if changed := m.Merge(map[string]interface{}{"a": "2"}); !changed {
		t.Error("Replacing a value should report a change")
	}
	if m["a"] != "2" {
		t.Errorf("Merge did not replace value, got %v", m["a"])
	}

	if changed := m.Merge(map[string]interface{}{"c": true}); !changed {
		t.Error("Adding a key should report a change")
	}

	var nilMap JSONMap
	if changed := nilMap.Merge(map[string]interface{}{"x": "y"}); !changed {
		t.Error("Merging into a nil map should report a change")
	}
	if nilMap["x"] != "y" {
		t.Errorf("Merge into nil map lost the entry: %v", nilMap)
	}
}
