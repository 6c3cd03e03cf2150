package usecase

import (
	"testing"

	"github.com/eslsoft/parlato/internal/entity"
)

func TestChooseBucketLeakage(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()

	// B1 leakage is A1:15, A2:15, B1:70. Draw 0 lands in the A1 band,
	// draw 15 in A2, draw 30 in B1.
	cases := []struct {
		draw int
		want entity.Level
	}{
		{0, entity.LevelA1},
		{14, entity.LevelA1},
		{15, entity.LevelA2},
		{29, entity.LevelA2},
		{30, entity.LevelB1},
		{99, entity.LevelB1},
	}
	for _, tc := range cases {
		selector := NewSelector(cat, &scriptedSource{ints: []int{tc.draw}})
		if got := selector.chooseBucket(entity.LevelB1, cfg); got != tc.want {
			t.Errorf("draw %d: got %s, want %s", tc.draw, got, tc.want)
		}
	}
}

func TestChooseBucketA1StaysHome(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()
	for draw := 0; draw < 100; draw += 7 {
		selector := NewSelector(cat, &scriptedSource{ints: []int{draw}})
		if got := selector.chooseBucket(entity.LevelA1, cfg); got != entity.LevelA1 {
			t.Fatalf("draw %d: A1 user left A1 bucket (%s)", draw, got)
		}
	}
}

func TestSelectVerbHonorsExclusion(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()

	bucket := cat.ByLevel(entity.LevelA1)
	exclude := make([]string, 0, len(bucket)-1)
	for _, entry := range bucket[1:] {
		exclude = append(exclude, entry.Key())
	}

	// Any uniform draw must land on the single non-excluded verb.
	selector := NewSelector(cat, &scriptedSource{ints: []int{0, 3}})
	picked := selector.SelectVerb(entity.LevelA1, exclude, cfg)
	if picked.Key() != bucket[0].Key() {
		t.Fatalf("got %q, want the only non-excluded verb %q", picked.Key(), bucket[0].Key())
	}
}

func TestSelectVerbNeverStarves(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()

	// Excluding the whole bucket drops the exclusion instead of failing.
	exclude := make([]string, 0, cat.Size())
	for _, entry := range cat.All() {
		exclude = append(exclude, entry.Key())
	}

	selector := NewSelector(cat, &scriptedSource{ints: []int{0, 5}})
	picked := selector.SelectVerb(entity.LevelA1, exclude, cfg)
	if picked.Infinitive == "" {
		t.Fatal("selection starved with a full exclusion list")
	}
	if picked.Level != entity.LevelA1 {
		t.Fatalf("A1 draw left its bucket: %s", picked.Level)
	}
}
