package politics

import (
	"math"
	"testing"
)

func TestAddMemberRejectsLeaderAndDuplicates(t *testing.T) {
	c := NewConspiracy(ConspiracyCoupPlot, 1, "depose the regent", 0)

	if c.AddMember(1) {
		t.Error("leader was admitted as a member")
	}
	if !c.AddMember(2) {
		t.Fatal("first add rejected")
	}
	if c.AddMember(2) {
		t.Error("duplicate member admitted")
	}
	for _, m := range c.Members {
		if m == c.LeaderID {
			t.Error("leader ended up in member list")
		}
	}
}

func TestMembershipDeltas(t *testing.T) {
	c := NewConspiracy(ConspiracyCoupPlot, 1, "depose the regent", 0)
	baseStrength, baseRisk := c.Strength, c.DiscoveryRisk

	c.AddMember(2)
	if math.Abs(c.Strength-(baseStrength+0.1)) > 1e-9 {
		t.Errorf("got strength %v after join, want +0.1", c.Strength)
	}
	if math.Abs(c.DiscoveryRisk-(baseRisk+0.05)) > 1e-9 {
		t.Errorf("got risk %v after join, want +0.05", c.DiscoveryRisk)
	}

	c.RemoveMember(2)
	// A join/leave round trip never nets out: betrayal is strictly riskier.
	if c.DiscoveryRisk <= baseRisk {
		t.Errorf("got risk %v after round trip, want strictly above %v", c.DiscoveryRisk, baseRisk)
	}
}

func TestRemoveMemberFloorsAndCaps(t *testing.T) {
	c := NewConspiracy(ConspiracySabotage, 1, "burn the shipyards", 0)
	c.Strength = 0.05
	c.DiscoveryRisk = 0.95
	c.AddMember(2)

	c.RemoveMember(2)
	if c.Strength < 0 {
		t.Errorf("strength went negative: %v", c.Strength)
	}
	if c.DiscoveryRisk > 1 {
		t.Errorf("risk exceeded 1: %v", c.DiscoveryRisk)
	}

	if c.RemoveMember(99) {
		t.Error("removing a non-member reported success")
	}
}

func TestSuccessProbabilityClamps(t *testing.T) {
	c := NewConspiracy(ConspiracyCoupPlot, 1, "seize the throne", 0)
	c.Strength = 0.9
	c.Secrecy = 0.9
	c.DiscoveryRisk = 0.0
	c.AddExternalSupport("eastern court", 0.5)
	c.AddExternalSupport("smugglers guild", 0.5)

	if got := c.SuccessProbability(); got != 1.0 {
		t.Errorf("got %v, want clamped to exactly 1.0", got)
	}

	c.Strength = 0.0
	c.Secrecy = 0.0
	c.ExternalSupport = nil
	c.DiscoveryRisk = 1.0
	if got := c.SuccessProbability(); got != 0.0 {
		t.Errorf("got %v, want clamped to 0.0", got)
	}
}

func TestSuccessProbabilityIsPure(t *testing.T) {
	c := NewConspiracy(ConspiracyCoupPlot, 1, "seize the throne", 0)
	c.AddMember(2)
	c.AddMember(3)
	c.AddExternalSupport("temple", 0.4)

	first := c.SuccessProbability()
	for i := 0; i < 10; i++ {
		if got := c.SuccessProbability(); got != first {
			t.Fatalf("call %d: got %v, want %v", i, got, first)
		}
	}
}

func TestRecruitmentChance(t *testing.T) {
	rel := NewRelationship(1, 2)
	rel.Trust = 0.5
	rel.ConspiracyLevel = 0.5

	want := 0.5*0.4 + 0.5*0.6
	if got := RecruitmentChance(rel); math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := RecruitmentChance(nil); got != 0 {
		t.Errorf("got %v for missing edge, want 0", got)
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []ConspiracyStatus{ConspiracyExposed, ConspiracySuccessful, ConspiracyFailed, ConspiracyDisbanded}
	for _, st := range terminal {
		if !st.Terminal() {
			t.Errorf("%s not reported terminal", st)
		}
	}
	if ConspiracyForming.Terminal() || ConspiracyActive.Terminal() {
		t.Error("live status reported terminal")
	}
}
