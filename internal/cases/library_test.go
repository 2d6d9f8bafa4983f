package cases

import (
	"testing"

	"github.com/echosense-labs/echosense/internal/podcast"
)

func TestNewLibraryCorpora(t *testing.T) {
	lib := NewLibrary()

	if got := len(lib.Lookup(podcast.DomainCommercial)); got != 4 {
		t.Errorf("commercial corpus = %d entries, want 4", got)
	}
	if got := len(lib.Lookup(podcast.DomainViral)); got != 3 {
		t.Errorf("viral corpus = %d entries, want 3", got)
	}
	if got := len(lib.Lookup(podcast.DomainRisk)); got != 3 {
		t.Errorf("risk corpus = %d entries, want 3", got)
	}
}

func TestEveryCaseCitesASource(t *testing.T) {
	lib := NewLibrary()
	for _, d := range []podcast.Domain{podcast.DomainCommercial, podcast.DomainViral, podcast.DomainRisk} {
		for _, c := range lib.Lookup(d) {
			if c.Source == "" {
				t.Errorf("case %s has no source", c.ID)
			}
			if c.ID == "" || c.Description == "" || c.AudienceSize == "" {
				t.Errorf("case %+v missing required fields", c)
			}
		}
	}
}

func TestSample(t *testing.T) {
	lib := NewLibrary()

	sample := lib.Sample(podcast.DomainCommercial, 2)
	if len(sample) != 2 {
		t.Fatalf("Sample returned %d entries, want 2", len(sample))
	}
	corpus := lib.Lookup(podcast.DomainCommercial)
	if sample[0].ID != corpus[0].ID || sample[1].ID != corpus[1].ID {
		t.Error("Sample should take entries in priority order")
	}

	if got := lib.Sample(podcast.DomainViral, 99); len(got) != 3 {
		t.Errorf("oversized sample should cap at corpus size, got %d", len(got))
	}
}

func TestOverridesReplaceDomainWholesale(t *testing.T) {
	custom := []podcast.ReferenceCase{
		{ID: "my_001", Description: "自定义案例", AudienceSize: "1-2万粉丝", Source: "个人合作记录"},
	}
	lib := NewLibraryWithOverrides(map[podcast.Domain][]podcast.ReferenceCase{
		podcast.DomainCommercial: custom,
	})

	got := lib.Lookup(podcast.DomainCommercial)
	if len(got) != 1 || got[0].ID != "my_001" {
		t.Errorf("override should replace the commercial corpus, got %+v", got)
	}
	if len(lib.Lookup(podcast.DomainViral)) != 3 {
		t.Error("untouched domains should keep the built-in corpus")
	}
}

func TestEmptyOverrideIgnored(t *testing.T) {
	lib := NewLibraryWithOverrides(map[podcast.Domain][]podcast.ReferenceCase{
		podcast.DomainRisk: nil,
	})
	if len(lib.Lookup(podcast.DomainRisk)) != 3 {
		t.Error("an empty override list should not blank a corpus")
	}
}
