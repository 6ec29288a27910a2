package catalog

import "testing"

func TestDefaultCatalogueKnownCodes(t *testing.T) {
	cat := Default()

	acronym, name, ok := cat.ObjectClass(58)
	if !ok || acronym != "LIGHTS" || name == "" {
		t.Errorf("ObjectClass(58) = %q, %q, %v, want \"LIGHTS\", non-empty, true", acronym, name, ok)
	}

	acronym, name, valtype, ok := cat.Attribute(71)
	if !ok || acronym != "OBJNAM" || name == "" || valtype != ValueTypeFreeText {
		t.Errorf("Attribute(71) = %q, %q, %v, %v, want \"OBJNAM\", non-empty, FreeText, true", acronym, name, valtype, ok)
	}
}

func TestDefaultCatalogueMiss(t *testing.T) {
	if _, _, ok := Default().ObjectClass(999999); ok {
		t.Error("ObjectClass(999999) should miss")
	}
	if _, _, _, ok := Default().Attribute(999999); ok {
		t.Error("Attribute(999999) should miss")
	}
}
