package diag

import (
	"bytes"
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &Error{
		Type:    "syntax error",
		Message: "unexpected token",
		//                          0123456789
		Context: *NewContext("line 10", "PRINT 1 )", Ranging{8, 9}),
	}

	if got, want := err.Error(), "syntax error: line 10:9: unexpected token"; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
	if got, want := err.Range(), (Ranging{8, 9}); got != want {
		t.Errorf("Range() -> %v, want %v", got, want)
	}
	wantShow := "Syntax error: {unexpected token}\n  line 10, col 9: PRINT 1 <)>"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
}

func TestShowError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	var buf bytes.Buffer
	ShowError(&buf, errors.New("plain"))
	if got := buf.String(); got != "{plain}\n" {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	ShowError(&buf, &Error{Type: "t", Message: "m",
		Context: *NewContext("x", "AB", Ranging{0, 1})})
	if got, want := buf.String(), "T: {m}\n  x, col 1: <A>B\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
