package profile

import (
	"strings"
	"testing"

	"github.com/echosense-labs/echosense/internal/podcast"
)

func record(id string, d podcast.Discipline) podcast.DisciplineRecord {
	return podcast.DisciplineRecord{
		ID:           id,
		Discipline:   d,
		Date:         "2026-08-30",
		Observations: []string{"观察"},
	}
}

func TestAccumulateFixedDisciplines(t *testing.T) {
	p := podcast.DefaultUserProfile()

	updated, warnings := Accumulate(p, []podcast.DisciplineRecord{
		record("r1", podcast.DisciplineLaw),
		record("r2", podcast.DisciplineLaw),
		record("r3", podcast.DisciplineHealth),
	})

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if got := len(updated.DisciplineHistory.Law); got != 2 {
		t.Errorf("law history length = %d, want 2", got)
	}
	if got := len(updated.DisciplineHistory.Health); got != 1 {
		t.Errorf("health history length = %d, want 1", got)
	}
}

func TestAccumulateSkipsDuplicateIDs(t *testing.T) {
	p := podcast.DefaultUserProfile()
	p, _ = Accumulate(p, []podcast.DisciplineRecord{record("r1", podcast.DisciplineLaw)})

	updated, warnings := Accumulate(p, []podcast.DisciplineRecord{record("r1", podcast.DisciplineLaw)})

	if len(updated.DisciplineHistory.Law) != 1 {
		t.Errorf("duplicate should be skipped, got %d records", len(updated.DisciplineHistory.Law))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "duplicate") {
		t.Errorf("expected a duplicate warning, got %v", warnings)
	}
}

func TestAccumulateCustomDisciplineSlots(t *testing.T) {
	p := podcast.DefaultUserProfile()

	updated, warnings := Accumulate(p, []podcast.DisciplineRecord{
		record("c1", "哲学"),
		record("c2", "教育学"),
		record("c3", "哲学"),
	})
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(updated.CustomDisciplines) != 2 {
		t.Fatalf("custom slots = %d, want 2", len(updated.CustomDisciplines))
	}
	if updated.CustomDisciplines[0].Name != "哲学" || len(updated.CustomDisciplines[0].Records) != 2 {
		t.Errorf("records should merge by name: %+v", updated.CustomDisciplines[0])
	}
}

func TestAccumulateDropsThirdCustomSlot(t *testing.T) {
	p := podcast.DefaultUserProfile()
	p, _ = Accumulate(p, []podcast.DisciplineRecord{
		record("c1", "哲学"),
		record("c2", "教育学"),
	})

	updated, warnings := Accumulate(p, []podcast.DisciplineRecord{record("c3", "社会学")})

	if len(updated.CustomDisciplines) != 2 {
		t.Errorf("cap should hold at %d slots, got %d", podcast.MaxCustomDisciplines, len(updated.CustomDisciplines))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "社会学") {
		t.Errorf("expected a cap warning naming the dropped lens, got %v", warnings)
	}
}

func TestAccumulateDoesNotAliasInput(t *testing.T) {
	p := podcast.DefaultUserProfile()
	p, _ = Accumulate(p, []podcast.DisciplineRecord{record("r1", podcast.DisciplineLaw)})

	updated, _ := Accumulate(p, []podcast.DisciplineRecord{record("r2", podcast.DisciplineLaw)})

	if len(p.DisciplineHistory.Law) != 1 {
		t.Errorf("input profile mutated: law length = %d, want 1", len(p.DisciplineHistory.Law))
	}
	if len(updated.DisciplineHistory.Law) != 2 {
		t.Errorf("updated law length = %d, want 2", len(updated.DisciplineHistory.Law))
	}
}

func TestDedupByID(t *testing.T) {
	records := []podcast.DisciplineRecord{
		record("a", podcast.DisciplineLaw),
		record("b", podcast.DisciplineLaw),
		record("a", podcast.DisciplineLaw),
	}
	out := DedupByID(records)
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("DedupByID = %+v", out)
	}
}
