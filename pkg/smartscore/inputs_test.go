package smartscore

import "testing"

func fp(v float64) *float64 { return &v }

func TestInferZone(t *testing.T) {
	tests := []struct {
		name    string
		hint    ZoneType
		densite float64
		want    ZoneType
	}{
		{"explicit hint wins", ZoneRural, 5000, ZoneRural},
		{"dense is urban", "", 3500, ZoneUrbain},
		{"urban threshold inclusive", "", 3000, ZoneUrbain},
		{"sparse is rural", "", 200, ZoneRural},
		{"rural threshold inclusive", "", 300, ZoneRural},
		{"middle is periurban", "", 1000, ZonePeriurbain},
		{"unknown density is periurban", "", 0, ZonePeriurbain},
		{"garbage hint falls back to density", "centre-ville", 4000, ZoneUrbain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferZone(tt.hint, tt.densite); got != tt.want {
				t.Errorf("InferZone(%q, %v) = %s, want %s", tt.hint, tt.densite, got, tt.want)
			}
		})
	}
}

func TestBellCurve(t *testing.T) {
	// Student-housing coverage parameters: (2, 55) -> (8, 100) -> (25, 15).
	lo, peak, hi := etudiantOffreLo, etudiantOffrePeak, etudiantOffreHi
	loS, floorS := etudiantOffreLoScore, etudiantOffreFloorScore

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"below low anchor", 0, 55},
		{"at low anchor", 2, 55},
		{"rising segment midpoint", 5, 77.5},
		{"at peak", 8, 100},
		{"falling segment midpoint", 16.5, 57.5},
		{"at ceiling", 25, 15},
		{"beyond ceiling stays at floor", 60, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bellCurve(tt.x, lo, peak, hi, loS, floorS)
			if got != tt.want {
				t.Errorf("bellCurve(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestServiceAccessScore(t *testing.T) {
	tests := []struct {
		name    string
		dist    *float64
		present bool
		want    float64
	}{
		{"unknown distance, present", nil, true, 40},
		{"unknown distance, absent", nil, false, 0},
		{"at the doorstep", fp(0), false, 100},
		{"half the decay range", fp(12.5), true, 50},
		{"at decay max floors at presence bonus", fp(25), true, 40},
		{"beyond decay max still floors", fp(60), false, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serviceAccessScore(tt.dist, tt.present, 25)
			if got != tt.want {
				t.Errorf("serviceAccessScore = %v, want %v", got, tt.want)
			}
		})
	}
}
