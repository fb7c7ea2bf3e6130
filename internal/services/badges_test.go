package services

import (
	"reflect"
	"testing"
)

func TestBadgesFor(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   []string
	}{
		{"zero points", 0, []string{}},
		{"just below first threshold", 99, []string{}},
		{"first threshold exact", 100, []string{"Eco-Initiate"}},
		{"between first and second", 249, []string{"Eco-Initiate"}},
		{"second threshold exact", 250, []string{"Eco-Initiate", "Green Guardian"}},
		{"just below third", 499, []string{"Eco-Initiate", "Green Guardian"}},
		{"third threshold exact", 500, []string{"Eco-Initiate", "Green Guardian", "Planet Hero"}},
		{"far above all thresholds", 10000, []string{"Eco-Initiate", "Green Guardian", "Planet Hero"}},
		{"negative points", -50, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BadgesFor(tt.points)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BadgesFor(%d) = %v, want %v", tt.points, got, tt.want)
			}
		})
	}
}

func TestBadgesForNeverNil(t *testing.T) {
	if BadgesFor(0) == nil {
		t.Fatal("BadgesFor(0) returned nil, want empty slice")
	}
}

func TestBadgesForOrdered(t *testing.T) {
	// L'ordre des badges suit l'ordre des seuils, quel que soit le total
	badges := BadgesFor(1000)
	want := []string{"Eco-Initiate", "Green Guardian", "Planet Hero"}
	if !reflect.DeepEqual(badges, want) {
		t.Errorf("badges out of order: got %v, want %v", badges, want)
	}
}
