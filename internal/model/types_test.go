package model

import (
	"testing"
	"time"
)

func TestTierOrdering(t *testing.T) {
	ordered := []Tier{TierDead, TierCritical, TierLowCompute, TierNormal, TierThriving}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Value() >= ordered[i].Value() {
			t.Fatalf("tier %s should rank below %s", ordered[i-1], ordered[i])
		}
	}
	if TierThriving.Value() != MaxTierValue {
		t.Fatalf("thriving should carry the max tier value, got %d", TierThriving.Value())
	}
	if Tier("bogus").Value() != 0 {
		t.Fatalf("unknown tiers should rank as dead")
	}
}

func TestEntityAlive(t *testing.T) {
	e := Entity{ID: "agent-1", Status: StatusAlive}
	if !e.Alive() {
		t.Fatalf("expected alive")
	}

	now := time.Now()
	e.Status = StatusDead
	e.DiedAt = &now
	if e.Alive() {
		t.Fatalf("expected dead")
	}
}
