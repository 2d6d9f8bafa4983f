// Package profile folds per-run discipline observations into the
// long-lived creator profile. The fold is pure: it returns an updated
// profile value and leaves persistence to the caller.
package profile

import (
	"fmt"

	"github.com/echosense-labs/echosense/internal/podcast"
)

// Accumulate appends each new record to the owning discipline history.
// Records for one of the five fixed disciplines go straight to that
// history; anything else is matched to an existing custom-discipline slot
// by name, or opens a new slot while fewer than two exist. A record whose
// id is already present in the target history is skipped, and a record
// that would need a third custom slot is dropped; both degradations are
// reported as warnings rather than errors.
//
// History length is unbounded by design; no eviction happens here.
func Accumulate(p podcast.UserProfile, records []podcast.DisciplineRecord) (podcast.UserProfile, []string) {
	var warnings []string

	for _, r := range records {
		if r.Discipline.IsFixed() {
			appendFixed(&p.DisciplineHistory, r, &warnings)
			continue
		}
		appendCustom(&p, r, &warnings)
	}

	return p, warnings
}

func appendFixed(h *podcast.DisciplineHistory, r podcast.DisciplineRecord, warnings *[]string) {
	target := historySlot(h, r.Discipline)
	if containsID(*target, r.ID) {
		*warnings = append(*warnings, fmt.Sprintf("duplicate record %s for discipline %s skipped", r.ID, r.Discipline))
		return
	}
	*target = appendCopy(*target, r)
}

func appendCustom(p *podcast.UserProfile, r podcast.DisciplineRecord, warnings *[]string) {
	name := string(r.Discipline)

	for i := range p.CustomDisciplines {
		if p.CustomDisciplines[i].Name != name {
			continue
		}
		if containsID(p.CustomDisciplines[i].Records, r.ID) {
			*warnings = append(*warnings, fmt.Sprintf("duplicate record %s for custom discipline %s skipped", r.ID, name))
			return
		}
		slots := make([]podcast.CustomDiscipline, len(p.CustomDisciplines))
		copy(slots, p.CustomDisciplines)
		slots[i].Records = appendCopy(slots[i].Records, r)
		p.CustomDisciplines = slots
		return
	}

	if len(p.CustomDisciplines) >= podcast.MaxCustomDisciplines {
		*warnings = append(*warnings, fmt.Sprintf("custom discipline cap (%d) reached, dropping %q", podcast.MaxCustomDisciplines, name))
		return
	}

	slots := make([]podcast.CustomDiscipline, len(p.CustomDisciplines), len(p.CustomDisciplines)+1)
	copy(slots, p.CustomDisciplines)
	p.CustomDisciplines = append(slots, podcast.CustomDiscipline{
		Name:    name,
		Records: []podcast.DisciplineRecord{r},
	})
}

// historySlot returns the mutable slice for a fixed discipline.
func historySlot(h *podcast.DisciplineHistory, d podcast.Discipline) *[]podcast.DisciplineRecord {
	switch d {
	case podcast.DisciplineLaw:
		return &h.Law
	case podcast.DisciplinePsychology:
		return &h.Psychology
	case podcast.DisciplineBusiness:
		return &h.Business
	case podcast.DisciplineHealth:
		return &h.Health
	default:
		return &h.Communication
	}
}

func containsID(records []podcast.DisciplineRecord, id string) bool {
	for _, r := range records {
		if r.ID == id {
			return true
		}
	}
	return false
}

// appendCopy appends without aliasing the input profile's backing array.
func appendCopy(records []podcast.DisciplineRecord, r podcast.DisciplineRecord) []podcast.DisciplineRecord {
	out := make([]podcast.DisciplineRecord, len(records), len(records)+1)
	copy(out, records)
	return append(out, r)
}

// DedupByID removes records sharing an id, keeping first occurrence. Used
// by rendering as a defensive second layer on top of Accumulate's check.
func DedupByID(records []podcast.DisciplineRecord) []podcast.DisciplineRecord {
	seen := make(map[string]bool, len(records))
	var out []podcast.DisciplineRecord
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
