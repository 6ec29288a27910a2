package iso8211

import "testing"

func TestParseFieldSchemaNameComposite(t *testing.T) {
	control := "100000000" // structure=vector('1'), type arbitrary, 7 filler bytes
	area := control + "VRPT" + string(rune(UnitTerminator)) +
		"*NAME!ORNT!USAG!TOPI!MASK" + string(rune(UnitTerminator)) +
		"(b11,b14,b11,b11,b11,b11)" + string(rune(FieldTerminator))

	schema, err := parseFieldSchema("VRPT", []byte(area))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.Structure != StructureVector {
		t.Errorf("Structure = %v, want StructureVector", schema.Structure)
	}
	if len(schema.RowTemplate) != 5 {
		t.Fatalf("got %d subfield slots, want 5 (NAME,ORNT,USAG,TOPI,MASK)", len(schema.RowTemplate))
	}
	if schema.RowTemplate[0].Label != "NAME" || len(schema.RowTemplate[0].Formats) != 2 {
		t.Errorf("NAME slot = %+v, want a 2-atom composite", schema.RowTemplate[0])
	}
	for _, slot := range schema.RowTemplate[1:] {
		if len(slot.Formats) != 1 {
			t.Errorf("slot %q has %d atoms, want 1", slot.Label, len(slot.Formats))
		}
	}
}

func TestParseFieldSchemaElementary(t *testing.T) {
	control := "000000000" // structure=elementary('0')
	area := control + "RCNM" + string(rune(UnitTerminator)) + "(b11)" + string(rune(FieldTerminator))

	schema, err := parseFieldSchema("RCNM", []byte(area))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema.RowTemplate) != 1 || schema.RowTemplate[0].Label != "RCNM" {
		t.Fatalf("got %+v, want a single RCNM slot", schema.RowTemplate)
	}
}
