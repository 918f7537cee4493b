package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key thresholds.

func describeSmartScore() string {
	return `Scores a real-estate development dossier 0-100 with a project-type-specific weighted model.

USE WHEN:
- Assessing the market fit of a financing dossier before committee
- Comparing several sites or project types for the same operation
- Explaining which factors drive a dossier's score up or down

INTERPRETING RESULTS:
- Score >= 75: GO, the market context supports the project
- Score 60-74: GO_AVEC_RESERVES, fund with conditions on the weak components
- Score 45-59: A_APPROFONDIR, request more data before deciding
- Score < 45: NO_GO, the market context works against the project
- Missing provider blocks degrade to neutral sub-scores, they never fail
- project_nature selects the model: logement, ehpad, residence_senior,
  residence_etudiante, bureaux, commerce, or hotel

METRICS RETURNED:
- score: rounded global score and verdict
- components: per-component normalized score and weight
- opportunities, risks, recommendations: narrative findings in French`
}

func describeRatios() string {
	return `Computes the amortizing-loan monthly payment and the four credit-committee ratios (LTV, LTC, DSTI, DSCR).

USE WHEN:
- Checking whether a loan request fits standard prudential limits
- Deriving the monthly payment from amount, duration and rate
- Stress-testing a dossier with alternative rates or durations

INTERPRETING RESULTS:
- LTV > 0.8: loan exceeds 80% of the property value, weak collateral margin
- LTC > 0.9: very little sponsor equity in the operation
- DSTI > 0.35: borrower debt service above the usual affordability ceiling
- DSCR < 1.0: expected rent does not cover the payment
- A null ratio means its denominator was unavailable, not that it passed

METRICS RETURNED:
- mensualite: monthly payment
- coutTotal: acquisition + works + fees
- ltv, ltc, dsti, dscr: ratios or null
- annualRatePct: the rate actually applied after fallbacks`
}

func describeCommittee() string {
	return `Aggregates an operation document into a committee risk score, confidence level and decision.

USE WHEN:
- Producing the final committee view from collected market and risk data
- Cross-checking an externally computed risk score against geo-risk data
- Quantifying how complete the underlying data collection was

INTERPRETING RESULTS:
- decision: favorable >= 70, favorable_avec_conditions >= 55, ajourne >= 40,
  defavorable below, incomplet when no score could be computed
- confidence 0-100 drops 10 per missing data source and per blocking issue
- risk_fallback_suspected: an external risk score of exactly 50 contradicted
  clean geo data and was replaced by the geo-derived score
- risk details list each geo penalty applied (flood, seismic, hazard count)

METRICS RETURNED:
- total_score: market/risk blend, weights renormalized over present scores
- risk_score with reason when absent
- confidence, decision, risk_details`
}

func describeBatch() string {
	return `Scores a set of dossier files in parallel with content deduplication.

USE WHEN:
- Reviewing a whole portfolio of dossiers in one call
- Re-scoring a directory of dossiers after a data refresh
- Feeding trend analysis with per-file results

INTERPRETING RESULTS:
- Results come back in input order, one entry per path
- duplicate_of names the first path with identical content; its result is shared
- A per-file error never aborts the batch, check each entry's error field
- cached is true when a previous identical run was reused

METRICS RETURNED:
- Per file: path, dossier metadata, full scoring result or error`
}

func describeValidate() string {
	return `Validates a dossier document against the embedded JSON Schema without scoring it.

USE WHEN:
- Checking hand-written dossier files for typos before a batch run
- Verifying a data pipeline produces well-formed dossiers
- Diagnosing why a dossier fails to score

INTERPRETING RESULTS:
- A passing document only guarantees shape, not scoring quality
- Each issue names the failing instance path and the violated constraint
- Unknown top-level keys fail: they are almost always misspelled fields

METRICS RETURNED:
- Validity confirmation, or one issue line per schema violation`
}
