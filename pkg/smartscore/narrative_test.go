package smartscore

import (
	"reflect"
	"testing"
)

func TestBuildNarrative(t *testing.T) {
	rules := []narrativeRule{
		{KeyDemographie, atLeast, 70, narrativeOpportunity, "demo forte"},
		{KeyDemographie, below, 40, narrativeRisk, "demo faible"},
		{KeyMarche, below, 40, narrativeRisk, "marché atone"},
		{KeyServices, below, 45, narrativeRecommendation, "vérifier services"},
	}

	tests := []struct {
		name     string
		scores   map[ComponentKey]float64
		wantOps  []string
		wantRisk []string
		wantRecs []string
	}{
		{
			name:    "strong demographics triggers opportunity only",
			scores:  map[ComponentKey]float64{KeyDemographie: 82, KeyMarche: 55, KeyServices: 60},
			wantOps: []string{"demo forte"},
		},
		{
			name:     "weak everything",
			scores:   map[ComponentKey]float64{KeyDemographie: 30, KeyMarche: 20, KeyServices: 10},
			wantRisk: []string{"demo faible", "marché atone"},
			wantRecs: []string{"vérifier services"},
		},
		{
			name:   "boundary is inclusive for atLeast, exclusive for below",
			scores: map[ComponentKey]float64{KeyDemographie: 40, KeyMarche: 40, KeyServices: 45},
		},
		{
			name:   "missing component never triggers",
			scores: map[ComponentKey]float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, risks, recs := buildNarrative(rules, tt.scores)
			if !reflect.DeepEqual(ops, tt.wantOps) {
				t.Errorf("opportunities = %v, want %v", ops, tt.wantOps)
			}
			if !reflect.DeepEqual(risks, tt.wantRisk) {
				t.Errorf("risks = %v, want %v", risks, tt.wantRisk)
			}
			if !reflect.DeepEqual(recs, tt.wantRecs) {
				t.Errorf("recommendations = %v, want %v", recs, tt.wantRecs)
			}
		})
	}
}

func TestBuildNarrative_PreservesRuleOrder(t *testing.T) {
	rules := []narrativeRule{
		{KeyMarche, below, 50, narrativeRisk, "premier"},
		{KeyDemographie, below, 50, narrativeRisk, "second"},
	}
	_, risks, _ := buildNarrative(rules, map[ComponentKey]float64{
		KeyDemographie: 10,
		KeyMarche:      10,
	})
	want := []string{"premier", "second"}
	if !reflect.DeepEqual(risks, want) {
		t.Errorf("risks = %v, want rule order %v", risks, want)
	}
}
