package politics

import (
	"math"
	"testing"
)

func TestUpdateBetrayalHalvesComplicity(t *testing.T) {
	r := NewRelationship(1, 2)
	r.Trust = 0.5
	r.ConspiracyLevel = 0.6

	r.Update(0.4, ImpactBetrayal)

	if math.Abs(r.Trust-0.1) > 1e-9 {
		t.Errorf("got trust %v, want 0.1", r.Trust)
	}
	if math.Abs(r.ConspiracyLevel-0.3) > 1e-9 {
		t.Errorf("got conspiracy %v, want halved to 0.3", r.ConspiracyLevel)
	}
}

func TestUpdateCooperationGatesComplicityOnTrust(t *testing.T) {
	r := NewRelationship(1, 2)
	r.Trust = 0.2

	// Below the 0.7 trust gate: no complicity gain.
	r.Update(0.4, ImpactCooperation)
	if r.ConspiracyLevel != 0 {
		t.Errorf("got conspiracy %v below trust gate, want 0", r.ConspiracyLevel)
	}

	// Push trust over the gate; complicity starts accruing.
	r.Trust = 0.8
	r.Update(0.4, ImpactMutualBenefit)
	if r.ConspiracyLevel != 0.05 {
		t.Errorf("got conspiracy %v, want fixed increment 0.05", r.ConspiracyLevel)
	}
}

func TestUpdateConflict(t *testing.T) {
	r := NewRelationship(1, 2)
	r.Trust = 0.5
	r.Influence = 0.5

	r.Update(0.5, ImpactConflict)

	if math.Abs(r.Trust-0.35) > 1e-9 {
		t.Errorf("got trust %v, want 0.35", r.Trust)
	}
	if math.Abs(r.Influence-0.45) > 1e-9 {
		t.Errorf("got influence %v, want 0.45", r.Influence)
	}
}

func TestDecayConspiracyTwiceTrustRate(t *testing.T) {
	r := NewRelationship(1, 2)
	r.Trust = 0.8
	r.ConspiracyLevel = 0.8

	rate := 0.01
	r.Decay(rate)

	wantTrust := 0.8 * (1 - rate)
	wantConspiracy := 0.8 * (1 - 2*rate)
	if math.Abs(r.Trust-wantTrust) > 1e-9 {
		t.Errorf("got trust %v, want %v", r.Trust, wantTrust)
	}
	if math.Abs(r.ConspiracyLevel-wantConspiracy) > 1e-9 {
		t.Errorf("got conspiracy %v, want %v", r.ConspiracyLevel, wantConspiracy)
	}

	// Repeated decay drives both to zero.
	for i := 0; i < 5000; i++ {
		r.Decay(rate)
	}
	if math.Abs(r.Trust) > 1e-6 || r.ConspiracyLevel > 1e-6 {
		t.Errorf("decay did not zero the edge: trust=%v conspiracy=%v", r.Trust, r.ConspiracyLevel)
	}
}

func TestUpdateClampsRanges(t *testing.T) {
	r := NewRelationship(1, 2)
	r.Trust = -0.9

	r.Update(0.8, ImpactBetrayal)
	if r.Trust < -1 {
		t.Errorf("trust fell below -1: %v", r.Trust)
	}

	r.Trust = 0.95
	for i := 0; i < 10; i++ {
		r.Update(1.0, ImpactCooperation)
	}
	if r.Trust > 1 || r.ConspiracyLevel > 1 {
		t.Errorf("update escaped range: trust=%v conspiracy=%v", r.Trust, r.ConspiracyLevel)
	}
}

func TestShareSecretDeduplicates(t *testing.T) {
	r := NewRelationship(1, 2)
	r.ShareSecret("mem-a")
	r.ShareSecret("mem-a")
	r.ShareSecret("mem-b")
	if len(r.SharedSecrets) != 2 {
		t.Errorf("got %d secrets, want 2", len(r.SharedSecrets))
	}
}
