package cellgrid

import "testing"

func TestCellValue(t *testing.T) {
	g := NewFromRows([][]string{
		{"1", "2", "3"},
		{"4", "5", "6"},
	})

	v, ok := g.CellValue("A1")
	if !ok || v != "1" {
		t.Errorf("A1 = %q, %v; want 1, true", v, ok)
	}
	v, ok = g.CellValue("C2")
	if !ok || v != "6" {
		t.Errorf("C2 = %q, %v; want 6, true", v, ok)
	}
	if _, ok := g.CellValue("D1"); ok {
		t.Errorf("D1 should be absent")
	}
	if _, ok := g.CellValue("A5"); ok {
		t.Errorf("A5 should be absent")
	}
}
