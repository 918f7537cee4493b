package committee

import "github.com/tidwall/gjson"

// Operation documents come from several producers with inconsistent shapes:
// the same figure may sit under market.scores.global in one export and under
// marketStudy.score in another. firstPath resolves the first present path in
// order instead of scattering alias chains through the scoring logic.
func firstPath(doc []byte, paths ...string) (gjson.Result, bool) {
	for _, p := range paths {
		if r := gjson.GetBytes(doc, p); r.Exists() {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// firstNumber resolves the first path holding a numeric value.
func firstNumber(doc []byte, paths ...string) *float64 {
	for _, p := range paths {
		r := gjson.GetBytes(doc, p)
		if r.Exists() && r.Type == gjson.Number {
			v := r.Float()
			return &v
		}
	}
	return nil
}
