// Package valuation turns raw per-domain sub-scores into calibrated,
// case-grounded relative values: a percentile rank, matching reference
// cases, and a completed adoption-cost estimate.
package valuation

import (
	"fmt"
	"log"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/echosense-labs/echosense/internal/cases"
	"github.com/echosense-labs/echosense/internal/podcast"
)

// genericFallbackCount is how many top corpus entries back a high-percentile
// claim when no case overlaps the audience context.
const genericFallbackCount = 2

// defaultResource is used when upstream provides no resource list.
const defaultResource = "无需额外资源"

// defaultTimeRequired is used when upstream provides no time estimate.
const defaultTimeRequired = "30分钟"

// Evaluator computes RelativeValue payloads against a case library.
type Evaluator struct {
	library *cases.Library
	logger  *log.Logger
}

// New returns an evaluator over the given library, logging validation
// warnings to stderr.
func New(library *cases.Library) *Evaluator {
	return &Evaluator{
		library: library,
		logger:  log.New(os.Stderr, "valuation: ", log.LstdFlags),
	}
}

// NewWithLogger is like New but with an explicit warning sink.
func NewWithLogger(library *cases.Library, logger *log.Logger) *Evaluator {
	return &Evaluator{library: library, logger: logger}
}

// Evaluate completes the relative value for one suggestion. The upstream
// payload (as produced by the generation service) contributes explanation
// text and adoption-cost hints; percentile, rank, and reference cases are
// always recomputed locally so the claim stays defensible.
func (e *Evaluator) Evaluate(domain podcast.Domain, overallScore float64, audienceContext string, upstream podcast.RelativeValue) podcast.RelativeValue {
	percentile, clamped := Percentile(overallScore)
	if clamped {
		e.warnf("overall score %v out of [0,100] for domain %s, clamped to %.1f", overallScore, domain, percentile)
	}

	rv := podcast.RelativeValue{
		Percentile:     percentile,
		Rank:           RankLabel(percentile),
		ReferenceCases: e.selectCases(domain, percentile, audienceContext),
		Explanation:    upstream.Explanation,
		AdoptionCost:   normalizeCost(upstream.AdoptionCost),
	}

	if rv.Explanation == "" {
		rv.Explanation = fmt.Sprintf("该段落在%s维度的历史参考分布中位于%s", domainLabel(domain), rv.Rank)
	}

	return rv
}

// Percentile maps a raw overall score to a percentile rank. Scores in the
// reference corpus are already percentile-scaled, so the mapping is the
// identity clamped to [0,100]; NaN maps to 0. The second return reports
// whether the input needed repair.
func Percentile(score float64) (float64, bool) {
	if math.IsNaN(score) {
		return 0, true
	}
	if score < 0 {
		return 0, true
	}
	if score > 100 {
		return 100, true
	}
	return score, false
}

// RankLabel returns the band label for a percentile. Intermediate values
// floor to the nearest labeled band; below 80 the label is computed as
// 前{100-percentile}%.
func RankLabel(percentile float64) string {
	switch {
	case percentile >= 99:
		return "前1%"
	case percentile >= 95:
		return "前5%"
	case percentile >= 90:
		return "前10%"
	case percentile >= 80:
		return "前20%"
	default:
		return fmt.Sprintf("前%d%%", 100-int(math.Floor(percentile)))
	}
}

// selectCases picks reference cases whose audience-size bucket overlaps the
// current context. When nothing overlaps and the percentile claims top-10%
// standing, the claim still needs backing, so the top generic entries are
// returned instead; below the top-10% band an empty list is acceptable.
func (e *Evaluator) selectCases(domain podcast.Domain, percentile float64, audienceContext string) []podcast.ReferenceCase {
	corpus := e.library.Lookup(domain)

	var matched []podcast.ReferenceCase
	ctxLo, ctxHi, ctxOK := parseAudienceRange(audienceContext)
	if ctxOK {
		for _, c := range corpus {
			lo, hi, ok := parseAudienceRange(c.AudienceSize)
			if ok && rangesOverlap(ctxLo, ctxHi, lo, hi) {
				matched = append(matched, c)
			}
		}
	}

	if len(matched) > 0 {
		return matched
	}
	if percentile >= 90 {
		return e.library.Sample(domain, genericFallbackCount)
	}
	return nil
}

// normalizeCost fills the gaps upstream left in an adoption-cost estimate.
func normalizeCost(cost podcast.AdoptionCost) podcast.AdoptionCost {
	switch cost.Difficulty {
	case podcast.DifficultyEasy, podcast.DifficultyMedium, podcast.DifficultyHard:
	default:
		cost.Difficulty = podcast.DifficultyMedium
	}
	if cost.TimeRequired == "" {
		cost.TimeRequired = defaultTimeRequired
	}
	if len(cost.Resources) == 0 {
		cost.Resources = []string{defaultResource}
	}
	return cost
}

// audienceNumber matches a figure with an optional 万 multiplier inside an
// audience-size bucket such as "5-10万粉丝" or "影响3000-8000粉丝".
var audienceNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)(万)?`)

// parseAudienceRange extracts the numeric range from an audience bucket.
// When the bucket carries two figures, the unit of the second applies to
// both ("5-10万" means 50k-100k). A single figure yields a point range.
func parseAudienceRange(s string) (lo, hi float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}

	matches := audienceNumber.FindAllStringSubmatch(s, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}

	first, err := strconv.ParseFloat(matches[0][1], 64)
	if err != nil {
		return 0, 0, false
	}

	if len(matches) == 1 {
		if matches[0][2] == "万" {
			first *= 10000
		}
		return first, first, true
	}

	second, err := strconv.ParseFloat(matches[1][1], 64)
	if err != nil {
		return 0, 0, false
	}
	if matches[1][2] == "万" || matches[0][2] == "万" {
		first *= 10000
		second *= 10000
	}
	if second < first {
		first, second = second, first
	}
	return first, second, true
}

func rangesOverlap(lo1, hi1, lo2, hi2 float64) bool {
	return lo1 <= hi2 && lo2 <= hi1
}

func domainLabel(d podcast.Domain) string {
	switch d {
	case podcast.DomainCommercial:
		return "商业化价值"
	case podcast.DomainViral:
		return "传播价值"
	case podcast.DomainRisk:
		return "风险"
	default:
		return string(d)
	}
}

func (e *Evaluator) warnf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
