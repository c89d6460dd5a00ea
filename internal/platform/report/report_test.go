package report

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Table{
		Title:     "Data breach register",
		Columns:   []Column{{Header: "ID", Width: 20}, {Header: "Description", Width: 60}},
		Rows:      [][]string{{"1", "a very long description that certainly does not fit into sixty millimetres of cell width"}},
		Generated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected PDF header")
	}
}

func TestRenderEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Table{Title: "Empty", Columns: []Column{{Header: "ID", Width: 20}}, Empty: "No records"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected output")
	}
}
