package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

const fullCoverage = `{
	"risks": {"geo": {"coverage": "ok", "nbRisques": 0, "hasInondation": false, "hasSismique": false}},
	"core": {
		"dvf": {"coverage": "ok"},
		"insee": {"coverage": "ok"},
		"bpe": {"coverage": "ok"},
		"transport": {"coverage": "ok"}
	},
	"market": {"scores": {"global": 82}}
}`

func TestComputeRiskScoreFromGeo(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantScore  *float64
		wantReason bool
	}{
		{
			name:      "clean geo scores 90",
			doc:       `{"risks":{"geo":{"coverage":"ok","nbRisques":0,"hasInondation":false,"hasSismique":false}}}`,
			wantScore: fp(90),
		},
		{
			name:      "flood plus two hazards",
			doc:       `{"risks":{"geo":{"coverage":"ok","nbRisques":2,"hasInondation":true,"hasSismique":false}}}`,
			wantScore: fp(40),
		},
		{
			name:      "seismic only",
			doc:       `{"risks":{"geo":{"coverage":"ok","nbRisques":1,"hasSismique":true}}}`,
			wantScore: fp(70),
		},
		{
			name:      "hazard penalty caps at 30",
			doc:       `{"risks":{"geo":{"coverage":"ok","nbRisques":12}}}`,
			wantScore: fp(55),
		},
		{
			name:      "everything at once clamps at zero",
			doc:       `{"risks":{"geo":{"coverage":"ok","nbRisques":12,"hasInondation":true,"hasSismique":true}}}`,
			wantScore: fp(10),
		},
		{
			name:       "incomplete coverage yields no score",
			doc:        `{"risks":{"geo":{"coverage":"partial","nbRisques":0}}}`,
			wantReason: true,
		},
		{
			name:       "absent geo block yields no score",
			doc:        `{}`,
			wantReason: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRiskScoreFromGeo([]byte(tt.doc))
			if tt.wantReason {
				assert.Nil(t, got.Score)
				assert.NotEmpty(t, got.Reason)
				return
			}
			require.NotNil(t, got.Score)
			assert.Equal(t, *tt.wantScore, *got.Score)
		})
	}
}

func TestComputeRiskScoreFromGeo_Details(t *testing.T) {
	doc := `{"risks":{"geo":{"coverage":"ok","nbRisques":3,"hasInondation":true}}}`
	got := ComputeRiskScoreFromGeo([]byte(doc))
	require.NotNil(t, got.Score)
	require.Len(t, got.Details, 2)
	assert.Equal(t, "Zone inondable", got.Details[0].Label)
	assert.Equal(t, -35.0, got.Details[0].Impact)
	assert.Equal(t, "Risques recensés", got.Details[1].Label)
	assert.Equal(t, -15.0, got.Details[1].Impact)
}

func TestComputeMarketScore_Aliases(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want *float64
	}{
		{"canonical nested path", `{"market":{"scores":{"global":74}}}`, fp(74)},
		{"flat score fallback", `{"market":{"score":61}}`, fp(61)},
		{"marketContext alias", `{"marketContext":{"scores":{"global":58}}}`, fp(58)},
		{"marketStudy alias", `{"marketStudy":{"score":49}}`, fp(49)},
		{"nested wins over a later alias", `{"market":{"scores":{"global":74}},"marketStudy":{"score":10}}`, fp(74)},
		{"non-numeric value skipped", `{"market":{"score":"n/a"},"marketStudy":{"score":33}}`, fp(33)},
		{"nothing present", `{}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMarketScore([]byte(tt.doc))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestComputeCommitteeScore(t *testing.T) {
	t.Run("both nil stays nil", func(t *testing.T) {
		assert.Nil(t, ComputeCommitteeScore(nil, nil))
	})
	t.Run("risk only renormalizes to full weight", func(t *testing.T) {
		got := ComputeCommitteeScore(fp(80), nil)
		require.NotNil(t, got)
		assert.Equal(t, 80.0, *got)
	})
	t.Run("market only renormalizes to full weight", func(t *testing.T) {
		got := ComputeCommitteeScore(nil, fp(66))
		require.NotNil(t, got)
		assert.Equal(t, 66.0, *got)
	})
	t.Run("sixty forty blend", func(t *testing.T) {
		got := ComputeCommitteeScore(fp(50), fp(100))
		require.NotNil(t, got)
		assert.InDelta(t, 80.0, *got, 1e-9)
	})
}

func TestComputeCommitteeScoreWeighted(t *testing.T) {
	t.Run("custom weights change the blend", func(t *testing.T) {
		got := ComputeCommitteeScoreWeighted(fp(50), fp(100), 0.5, 0.5)
		require.NotNil(t, got)
		assert.InDelta(t, 75.0, *got, 1e-9)
	})
	t.Run("risk-heavy weights", func(t *testing.T) {
		got := ComputeCommitteeScoreWeighted(fp(50), fp(100), 0.8, 0.2)
		require.NotNil(t, got)
		assert.InDelta(t, 60.0, *got, 1e-9)
	})
	t.Run("non-positive weights revert to defaults", func(t *testing.T) {
		got := ComputeCommitteeScoreWeighted(fp(50), fp(100), 0, -1)
		require.NotNil(t, got)
		assert.InDelta(t, 80.0, *got, 1e-9)
	})
	t.Run("single input renormalizes regardless of weights", func(t *testing.T) {
		got := ComputeCommitteeScoreWeighted(fp(80), nil, 0.1, 0.9)
		require.NotNil(t, got)
		assert.Equal(t, 80.0, *got)
	})
	t.Run("both nil stays nil", func(t *testing.T) {
		assert.Nil(t, ComputeCommitteeScoreWeighted(nil, nil, 0.5, 0.5))
	})
}

func TestComputeConfidence(t *testing.T) {
	t.Run("full coverage is 100", func(t *testing.T) {
		assert.Equal(t, 100.0, ComputeConfidence([]byte(fullCoverage)))
	})
	t.Run("empty document loses all coverage points", func(t *testing.T) {
		assert.Equal(t, 50.0, ComputeConfidence([]byte(`{}`)))
	})
	t.Run("missing items add severity penalties", func(t *testing.T) {
		doc := `{
			"risks": {"geo": {"coverage": "ok"}},
			"core": {"dvf":{"coverage":"ok"},"insee":{"coverage":"ok"},"bpe":{"coverage":"ok"},"transport":{"coverage":"ok"}},
			"missing": [
				{"item": "servitudes", "severity": "blocker"},
				{"item": "loyers", "severity": "warn"},
				{"item": "notes", "severity": "info"}
			]
		}`
		assert.Equal(t, 85.0, ComputeConfidence([]byte(doc)))
	})
	t.Run("producer alias for coverage", func(t *testing.T) {
		withAlias := `{"dvf":{"coverage":"ok"}}`
		assert.Equal(t, 60.0, ComputeConfidence([]byte(withAlias)))
	})
}

func TestResolveRiskScore(t *testing.T) {
	cleanGeo := []byte(`{"risks":{"geo":{"coverage":"ok","nbRisques":0}}}`)
	dirtyGeo := []byte(`{"risks":{"geo":{"coverage":"ok","nbRisques":1,"hasInondation":true}}}`)

	t.Run("sentinel 50 with clean geo is overridden", func(t *testing.T) {
		got := ResolveRiskScore(fp(50), cleanGeo)
		require.NotNil(t, got.Score)
		assert.Equal(t, 90.0, *got.Score)
		assert.True(t, got.RiskFallbackSuspected)
	})
	t.Run("sentinel 50 with hazards present is kept", func(t *testing.T) {
		got := ResolveRiskScore(fp(50), dirtyGeo)
		require.NotNil(t, got.Score)
		assert.Equal(t, 50.0, *got.Score)
		assert.False(t, got.RiskFallbackSuspected)
	})
	t.Run("genuine external score is kept", func(t *testing.T) {
		got := ResolveRiskScore(fp(72), cleanGeo)
		require.NotNil(t, got.Score)
		assert.Equal(t, 72.0, *got.Score)
		assert.False(t, got.RiskFallbackSuspected)
	})
	t.Run("no external falls back to geo", func(t *testing.T) {
		got := ResolveRiskScore(nil, dirtyGeo)
		require.NotNil(t, got.Score)
		assert.Equal(t, 45.0, *got.Score)
	})
	t.Run("no external and no geo yields nil with reason", func(t *testing.T) {
		got := ResolveRiskScore(nil, []byte(`{}`))
		assert.Nil(t, got.Score)
		assert.NotEmpty(t, got.Reason)
	})
}

func TestComputeDecision(t *testing.T) {
	tests := []struct {
		score *float64
		want  Decision
	}{
		{fp(70), DecisionFavorable},
		{fp(69.9), DecisionFavorableCond},
		{fp(55), DecisionFavorableCond},
		{fp(54), DecisionAjourne},
		{fp(40), DecisionAjourne},
		{fp(39), DecisionDefavorable},
		{nil, DecisionIncomplet},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeDecision(tt.score))
	}
}

func TestComputeCommitteeData(t *testing.T) {
	t.Run("complete operation", func(t *testing.T) {
		got := ComputeCommitteeData([]byte(fullCoverage), nil)
		// risk 90 (clean geo), market 82: 0.6*82 + 0.4*90 = 85.2
		require.NotNil(t, got.TotalScore)
		assert.InDelta(t, 85.2, *got.TotalScore, 1e-9)
		assert.Equal(t, DecisionFavorable, got.Decision)
		assert.Equal(t, 100.0, got.Confidence)
		require.NotNil(t, got.RiskScore)
		assert.Equal(t, 90.0, *got.RiskScore)
	})
	t.Run("empty operation is incomplete, not zero", func(t *testing.T) {
		got := ComputeCommitteeData([]byte(`{}`), nil)
		assert.Nil(t, got.TotalScore)
		assert.Nil(t, got.RiskScore)
		assert.Equal(t, DecisionIncomplet, got.Decision)
		assert.Equal(t, 50.0, got.Confidence)
	})
	t.Run("external risk override participates in the blend", func(t *testing.T) {
		got := ComputeCommitteeData([]byte(fullCoverage), fp(50))
		// sentinel 50 + clean geo: geo 90 wins
		require.NotNil(t, got.RiskScore)
		assert.Equal(t, 90.0, *got.RiskScore)
		assert.True(t, got.RiskFallbackSuspected)
	})
}

func TestComputeCommitteeDataWeighted(t *testing.T) {
	t.Run("configured weights flow into the total", func(t *testing.T) {
		got := ComputeCommitteeDataWeighted([]byte(fullCoverage), nil, 0.5, 0.5)
		// risk 90 (clean geo), market 82: even weights give 86
		require.NotNil(t, got.TotalScore)
		assert.InDelta(t, 86.0, *got.TotalScore, 1e-9)
		assert.Equal(t, DecisionFavorable, got.Decision)
	})
	t.Run("default weights match ComputeCommitteeData", func(t *testing.T) {
		weighted := ComputeCommitteeDataWeighted([]byte(fullCoverage), nil, WeightRisk, WeightMarket)
		plain := ComputeCommitteeData([]byte(fullCoverage), nil)
		require.NotNil(t, weighted.TotalScore)
		require.NotNil(t, plain.TotalScore)
		assert.Equal(t, *plain.TotalScore, *weighted.TotalScore)
	})
}

func TestFirstPath(t *testing.T) {
	doc := []byte(`{"b": {"x": 1}}`)
	r, ok := firstPath(doc, "a.x", "b.x")
	require.True(t, ok)
	assert.Equal(t, int64(1), r.Int())

	_, ok = firstPath(doc, "a.x", "c.x")
	assert.False(t, ok)
}
