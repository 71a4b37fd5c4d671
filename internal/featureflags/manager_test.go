package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("discover_filters=on,legacy_profile=off,read_receipts=true,beta_ui=false,a=1,b=0")

	if !m.Enabled("discover_filters", 1) || !m.Enabled("read_receipts", 1) || !m.Enabled("a", 1) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("legacy_profile", 1) || m.Enabled("beta_ui", 1) || m.Enabled("b", 1) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", 1) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", 1) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", 42); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}

	if m.Enabled("canary", 0) {
		t.Fatal("percentage rollout requires non-zero userID")
	}
}

func TestEnabled_UnknownFlag(t *testing.T) {
	m := NewManager("discover_filters=on")

	if m.Enabled("does_not_exist", 1) {
		t.Fatal("unknown flags must default to disabled")
	}
}

func TestEnabledOrDefault(t *testing.T) {
	m := NewManager("discover_filters=off")

	if m.EnabledOrDefault("discover_filters", 1, true) {
		t.Fatal("configured flag must win over the default")
	}
	if !m.EnabledOrDefault("unconfigured", 1, true) {
		t.Fatal("unconfigured flag must fall back to the default")
	}

	var nilManager *Manager
	if !nilManager.EnabledOrDefault("anything", 1, true) {
		t.Fatal("nil manager must fall back to the default")
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d", len(raw))
	}
	if raw["x"] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}

	snap := m.Snapshot(123)
	if len(snap) != 3 {
		t.Fatalf("expected snapshot size 3, got %d", len(snap))
	}
}
