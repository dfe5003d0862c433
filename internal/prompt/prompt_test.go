package prompt

import "testing"

func TestStatic(t *testing.T) {
	if !Static(true).Confirm("t", "d") {
		t.Fatalf("Static(true) should confirm")
	}
	if Static(false).Confirm("t", "d") {
		t.Fatalf("Static(false) should refuse")
	}
}

func TestFunc(t *testing.T) {
	var gotTitle, gotDesc string
	f := Func(func(title, description string) bool {
		gotTitle, gotDesc = title, description
		return true
	})
	if !f.Confirm("Close all?", "3 windows") {
		t.Fatalf("expected confirm")
	}
	if gotTitle != "Close all?" || gotDesc != "3 windows" {
		t.Fatalf("unexpected args %q %q", gotTitle, gotDesc)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Next: Static(true)}
	if !r.Confirm("a", "") || len(r.Titles) != 1 || r.Titles[0] != "a" {
		t.Fatalf("unexpected recorder state %+v", r.Titles)
	}

	var empty Recorder
	if empty.Confirm("b", "") {
		t.Fatalf("recorder without a delegate should refuse")
	}
}
