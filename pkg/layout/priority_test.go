package layout

import (
	"slices"
	"testing"
)

func TestComparePriority(t *testing.T) {
	tests := []struct {
		a, b Priority
		want int
	}{
		{Priority{ID: "z", Degree: 1}, Priority{ID: "a", Degree: 2}, -1},
		{Priority{ID: "z", Degree: 1, Bonus: bonusSpouse}, Priority{ID: "a", Degree: 1, Bonus: bonusLineal}, -1},
		{Priority{ID: "a", Degree: 1, Bonus: bonusSibling}, Priority{ID: "b", Degree: 1, Bonus: bonusSibling}, -1},
		{Priority{ID: "a", Degree: Unreachable}, Priority{ID: "b", Degree: 5}, 1},
		{Priority{ID: "a", Degree: 3}, Priority{ID: "a", Degree: 3}, 0},
	}
	for _, tt := range tests {
		if got := ComparePriority(tt.a, tt.b); got != tt.want {
			t.Errorf("ComparePriority(%+v, %+v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPlacementOrder(t *testing.T) {
	tr := newTree("root", "sis", "dad", "wife", "pal", "nephew", "loner")
	tr.rel("root", "sister", "sis").rel("root", "father", "dad").rel("root", "wife", "wife")
	tr.rel("root", "colleague", "pal").rel("sis", "son", "nephew")

	idx := mustIndex(t, tr.people())
	m, err := ComputeDegrees(idx, "root")
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, p := range PlacementOrder(idx, m) {
		got = append(got, p.ID)
	}
	want := []string{"wife", "dad", "sis", "pal", "nephew", "loner"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}
