package assess

import "testing"

func TestGuardInstallRemove(t *testing.T) {
	g := NewSoftLockGuard()
	if _, ok := g.Intercept("s1", GuardUnload); ok {
		t.Fatalf("uninstalled guard must not intercept")
	}
	g.Install("s1")
	if !g.Installed("s1") {
		t.Fatalf("guard not installed")
	}
	warning, ok := g.Intercept("s1", GuardReloadKeys)
	if !ok || warning == "" {
		t.Fatalf("intercept: ok=%v warning=%q", ok, warning)
	}
	// reports for another session are ignored
	if _, ok := g.Intercept("s2", GuardUnload); ok {
		t.Fatalf("guard intercepted a foreign session")
	}
	// removal by a stale session ID is a no-op
	g.Remove("s2")
	if !g.Installed("s1") {
		t.Fatalf("foreign remove cleared the guard")
	}
	g.Remove("s1")
	if g.Installed("s1") {
		t.Fatalf("guard still installed after remove")
	}
	if got := len(g.Events()); got != 1 {
		t.Fatalf("event log has %d entries, want 1", got)
	}
}
