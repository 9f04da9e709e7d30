// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/store/storedefs"
)

var historyLines = []string{"10 PRINT 1", "LIST", "RUN", "20 PRINT 2", "RUN"}

// TestCmd tests the history functionality of a Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	for i, line := range historyLines {
		wantSeq := i + 1
		seq, err := store.AddCmd(line)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%q) -> %v, %v, want %v, nil", line, seq, err, wantSeq)
		}
	}

	// A repeat of the newest entry is folded into it.
	seq, err := store.AddCmd("RUN")
	if seq != 5 || err != nil {
		t.Errorf("store.AddCmd(repeat) -> %v, %v, want 5, nil", seq, err)
	}

	cmds, err := store.CmdsWithSeq(2, 4)
	want := []storedefs.Cmd{{Text: "LIST", Seq: 2}, {Text: "RUN", Seq: 3}}
	if diff := cmp.Diff(want, cmds); diff != "" || err != nil {
		t.Errorf("store.CmdsWithSeq(2, 4) (-want +got):\n%s, err %v", diff, err)
	}
	cmds, err = store.CmdsWithSeq(0, -1)
	if err != nil {
		t.Errorf("store.CmdsWithSeq(0, -1) -> error %v", err)
	}
	var texts []string
	for _, cmd := range cmds {
		texts = append(texts, cmd.Text)
	}
	if diff := cmp.Diff(historyLines, texts); diff != "" {
		t.Errorf("store.CmdsWithSeq(0, -1) (-want +got):\n%s", diff)
	}
}

// TestVars tests the variable snapshots of a Store.
func TestVars(t *testing.T, store storedefs.Store) {
	if _, err := store.LoadVars("MISSING"); errs.KindOf(err) != errs.PathNotFound {
		t.Errorf("store.LoadVars(missing) -> %v, want PATH NOT FOUND", err)
	}

	if err := store.SaveVars("GAME", []byte("one")); err != nil {
		t.Errorf("store.SaveVars -> %v", err)
	}
	if err := store.SaveVars("GAME", []byte("two")); err != nil {
		t.Errorf("store.SaveVars (replace) -> %v", err)
	}
	store.SaveVars("ALPHA", []byte{})

	data, err := store.LoadVars("GAME")
	if string(data) != "two" || err != nil {
		t.Errorf("store.LoadVars(GAME) -> %q, %v, want \"two\", nil", data, err)
	}

	names, err := store.VarsNames()
	if diff := cmp.Diff([]string{"ALPHA", "GAME"}, names); diff != "" || err != nil {
		t.Errorf("store.VarsNames() (-want +got):\n%s, err %v", diff, err)
	}

	if err := store.DelVars("GAME"); err != nil {
		t.Errorf("store.DelVars(GAME) -> %v", err)
	}
	if _, err := store.LoadVars("GAME"); errs.KindOf(err) != errs.PathNotFound {
		t.Errorf("store.LoadVars after DelVars -> %v, want PATH NOT FOUND", err)
	}
	if err := store.DelVars("GAME"); errs.KindOf(err) != errs.PathNotFound {
		t.Errorf("store.DelVars(missing) -> %v, want PATH NOT FOUND", err)
	}
}
