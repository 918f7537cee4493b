// Package committee aggregates geo-risk, market and data-coverage signals
// from a loosely-typed operation document into the figures a credit committee
// reviews: a risk score, a blended total score, a data-reliability confidence
// and a decision tier.
package committee

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/tlemarchand/aval/pkg/scale"
)

// Decision tiers, ordered.
type Decision string

const (
	DecisionFavorable     Decision = "favorable"
	DecisionFavorableCond Decision = "favorable_avec_conditions"
	DecisionAjourne       Decision = "ajourne"
	DecisionDefavorable   Decision = "defavorable"
	DecisionIncomplet     Decision = "incomplet"
)

// Decision thresholds on the blended total score.
const (
	decisionFavorable     = 70.0
	decisionFavorableCond = 55.0
	decisionAjourne       = 40.0
)

// Blend weights. Market outlook weighs more than geo hazards in the total,
// and the pair renormalizes when one side is missing.
const (
	WeightMarket = 0.6
	WeightRisk   = 0.4
)

// Geo-risk scoring constants. A clean geo report scores 90, not 100: the
// committee never treats externally-sourced hazard data as a certainty.
const (
	geoCleanScore     = 90.0
	geoBaseScore      = 85.0
	geoFloodPenalty   = 35.0
	geoSeismicPenalty = 10.0
	geoPerHazard      = 5.0
	geoHazardCap      = 30.0
)

// RiskDetail itemizes one applied penalty for display.
type RiskDetail struct {
	Label  string  `json:"label"`
	Impact float64 `json:"impact"`
	Detail string  `json:"detail,omitempty"`
}

// RiskScore is the geo-derived risk assessment. Score is nil when the geo
// coverage is missing or incomplete; Reason then says why.
type RiskScore struct {
	Score   *float64     `json:"score"`
	Reason  string       `json:"reason,omitempty"`
	Details []RiskDetail `json:"details,omitempty"`
}

// ResolvedRisk is the outcome of reconciling an externally-supplied risk
// score with the geo-derived one. RiskFallbackSuspected is set when the
// external value matched the neutral-fallback sentinel and was overridden.
type ResolvedRisk struct {
	Score                 *float64     `json:"score"`
	RiskFallbackSuspected bool         `json:"riskFallbackSuspected,omitempty"`
	Reason                string       `json:"reason,omitempty"`
	Details               []RiskDetail `json:"details,omitempty"`
}

// CommitteeData is the assembled committee view of one operation. Confidence
// and the scores are independently nullable: a missing data source degrades
// confidence without zeroing an unrelated score.
type CommitteeData struct {
	Decision    Decision     `json:"decision"`
	Confidence  float64      `json:"confidence"`
	TotalScore  *float64     `json:"totalScore"`
	RiskScore   *float64     `json:"riskScore"`
	RiskDetails []RiskDetail `json:"riskDetails,omitempty"`

	// RiskFallbackSuspected surfaces the sentinel-override applied by
	// ResolveRiskScore so consumers need not re-infer it from the value.
	RiskFallbackSuspected bool `json:"riskFallbackSuspected,omitempty"`
}

// geoReport is the typed view of the risks.geo block.
type geoReport struct {
	coverage  string
	nbRisques int
	flood     bool
	seismic   bool
}

func readGeo(op []byte) (geoReport, bool) {
	if _, ok := firstPath(op, "risks.geo"); !ok {
		return geoReport{}, false
	}
	return geoReport{
		coverage:  gjson.GetBytes(op, "risks.geo.coverage").String(),
		nbRisques: int(gjson.GetBytes(op, "risks.geo.nbRisques").Int()),
		flood:     gjson.GetBytes(op, "risks.geo.hasInondation").Bool(),
		seismic:   gjson.GetBytes(op, "risks.geo.hasSismique").Bool(),
	}, true
}

func (g geoReport) clean() bool {
	return g.nbRisques == 0 && !g.flood && !g.seismic
}

// ComputeRiskScoreFromGeo derives a risk score from the Géorisques hazard
// flags of an operation document. Without complete geo coverage there is no
// score, only a reason.
func ComputeRiskScoreFromGeo(op []byte) RiskScore {
	geo, ok := readGeo(op)
	if !ok {
		return RiskScore{Reason: "données géorisques absentes"}
	}
	if geo.coverage != "ok" {
		return RiskScore{Reason: "couverture géorisques incomplète"}
	}
	if geo.clean() {
		s := geoCleanScore
		return RiskScore{Score: &s}
	}

	score := geoBaseScore
	var details []RiskDetail
	if geo.flood {
		score -= geoFloodPenalty
		details = append(details, RiskDetail{Label: "Zone inondable", Impact: -geoFloodPenalty})
	}
	if geo.seismic {
		score -= geoSeismicPenalty
		details = append(details, RiskDetail{Label: "Zone sismique", Impact: -geoSeismicPenalty})
	}
	if geo.nbRisques > 0 {
		pen := scale.Clamp(geoPerHazard*float64(geo.nbRisques), 0, geoHazardCap)
		score -= pen
		details = append(details, RiskDetail{
			Label:  "Risques recensés",
			Impact: -pen,
			Detail: fmt.Sprintf("%d risque(s) au registre Géorisques", geo.nbRisques),
		})
	}
	score = scale.Clamp0100(score)
	return RiskScore{Score: &score, Details: details}
}

// ComputeMarketScore extracts the market-study score from an operation
// document, tolerating the known producer aliases.
func ComputeMarketScore(op []byte) *float64 {
	return firstNumber(op,
		"market.scores.global", "market.score",
		"marketContext.scores.global", "marketContext.score",
		"marketStudy.scores.global", "marketStudy.score",
	)
}

// ComputeCommitteeScore blends risk and market with the default business
// weights. See ComputeCommitteeScoreWeighted.
func ComputeCommitteeScore(risk, market *float64) *float64 {
	return ComputeCommitteeScoreWeighted(risk, market, WeightRisk, WeightMarket)
}

// ComputeCommitteeScoreWeighted blends risk and market with the given
// weights, renormalized over the inputs actually present. A non-positive
// weight pair reverts to the defaults, mirroring how invalid verdict
// ladders revert. Both scores nil yields nil, never 0: an unscorable
// operation is not a zero-scored one.
func ComputeCommitteeScoreWeighted(risk, market *float64, wRisk, wMarket float64) *float64 {
	if wRisk <= 0 || wMarket <= 0 {
		wRisk, wMarket = WeightRisk, WeightMarket
	}

	var sum, weight float64
	if market != nil {
		sum += scale.Clamp0100(*market) * wMarket
		weight += wMarket
	}
	if risk != nil {
		sum += scale.Clamp0100(*risk) * wRisk
		weight += wRisk
	}
	if weight <= 0 {
		return nil
	}
	total := sum / weight
	return &total
}

// Coverage penalty paths per data source, with producer aliases.
var coveragePaths = [][]string{
	{"risks.geo.coverage"},
	{"core.dvf.coverage", "dvf.coverage"},
	{"core.insee.coverage", "insee.coverage"},
	{"core.bpe.coverage", "bpe.coverage"},
	{"core.transport.coverage", "transport.coverage"},
}

const (
	confidenceCoveragePenalty = 10.0
	confidenceBlockerPenalty  = 10.0
	confidenceWarnPenalty     = 5.0
)

// ComputeConfidence scores the reliability of the data behind an operation:
// 100 minus fixed penalties per incomplete source and per declared missing
// item. It measures data completeness, never project quality.
func ComputeConfidence(op []byte) float64 {
	conf := 100.0
	for _, aliases := range coveragePaths {
		r, ok := firstPath(op, aliases...)
		if !ok || r.String() != "ok" {
			conf -= confidenceCoveragePenalty
		}
	}

	var hasBlocker, hasWarn bool
	gjson.GetBytes(op, "missing").ForEach(func(_, item gjson.Result) bool {
		switch item.Get("severity").String() {
		case "blocker":
			hasBlocker = true
		case "warn":
			hasWarn = true
		}
		return true
	})
	if hasBlocker {
		conf -= confidenceBlockerPenalty
	}
	if hasWarn {
		conf -= confidenceWarnPenalty
	}
	return scale.Clamp0100(conf)
}

// neutralFallbackSentinel is the conventional score some producers emit when
// their risk computation fell back to "no opinion".
const neutralFallbackSentinel = 50.0

// ResolveRiskScore reconciles an externally-supplied risk score with the
// geo-derived one. An external score of exactly 50 alongside an
// independently clean geo report is treated as the producer's neutral
// fallback and overridden by the geo score; the flag records the suspicion
// so consumers can surface it rather than re-infer it from the value.
func ResolveRiskScore(external *float64, op []byte) ResolvedRisk {
	geo := ComputeRiskScoreFromGeo(op)

	if external == nil {
		return ResolvedRisk{Score: geo.Score, Reason: geo.Reason, Details: geo.Details}
	}
	if *external == neutralFallbackSentinel && geo.Score != nil {
		if g, ok := readGeo(op); ok && g.clean() {
			return ResolvedRisk{
				Score:                 geo.Score,
				RiskFallbackSuspected: true,
				Details:               geo.Details,
			}
		}
	}
	ext := scale.Clamp0100(*external)
	return ResolvedRisk{Score: &ext, Details: geo.Details}
}

// ComputeDecision maps a blended total score to a committee decision tier.
// A nil score means the dossier cannot be decided yet.
func ComputeDecision(total *float64) Decision {
	if total == nil {
		return DecisionIncomplet
	}
	switch s := scale.Clamp0100(*total); {
	case s >= decisionFavorable:
		return DecisionFavorable
	case s >= decisionFavorableCond:
		return DecisionFavorableCond
	case s >= decisionAjourne:
		return DecisionAjourne
	default:
		return DecisionDefavorable
	}
}

// ComputeCommitteeData assembles the full committee view of one operation
// document with the default blend weights. externalRisk, when non-nil, is
// reconciled against the geo data before blending.
func ComputeCommitteeData(op []byte, externalRisk *float64) CommitteeData {
	return ComputeCommitteeDataWeighted(op, externalRisk, WeightRisk, WeightMarket)
}

// ComputeCommitteeDataWeighted is ComputeCommitteeData with configurable
// blend weights.
func ComputeCommitteeDataWeighted(op []byte, externalRisk *float64, wRisk, wMarket float64) CommitteeData {
	risk := ResolveRiskScore(externalRisk, op)
	market := ComputeMarketScore(op)
	total := ComputeCommitteeScoreWeighted(risk.Score, market, wRisk, wMarket)

	return CommitteeData{
		Decision:              ComputeDecision(total),
		Confidence:            ComputeConfidence(op),
		TotalScore:            total,
		RiskScore:             risk.Score,
		RiskDetails:           risk.Details,
		RiskFallbackSuspected: risk.RiskFallbackSuspected,
	}
}
