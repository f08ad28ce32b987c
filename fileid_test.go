package journal

import "testing"

func TestFileIdKeyVariantsNeverEqual(t *testing.T) {
	a := FileID64(42)
	b := FileID128(42, 0)
	if a == b {
		t.Fatal("a 64-bit id and a 128-bit id with the same low bits must not compare equal")
	}
}

func TestFileIdKeyAsMapKey(t *testing.T) {
	m := map[FileIdKey]string{}
	m[FileID64(1)] = "one"
	m[FileID128(1, 2)] = "wide-one"

	if m[FileID64(1)] != "one" {
		t.Error("64-bit lookup returned wrong value")
	}
	if m[FileID128(1, 2)] != "wide-one" {
		t.Error("128-bit lookup returned wrong value")
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(m))
	}
}

func TestFileIdKeyString(t *testing.T) {
	if got := FileID64(12345).String(); got != "12345" {
		t.Errorf("FileID64(12345).String() = %q, want %q", got, "12345")
	}
	wide := FileID128(1, 2).String()
	if len(wide) != 16 {
		t.Errorf("FileID128 String() should be 16 raw bytes, got %d", len(wide))
	}
}
