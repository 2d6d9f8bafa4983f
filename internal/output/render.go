package output

import (
	"fmt"
	"strings"

	"github.com/echosense-labs/echosense/internal/podcast"
)

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// ScoreBar renders a visual bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case score >= 90:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case score >= 50:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleMuted.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// PriorityBadge renders a colored tier label.
func PriorityBadge(p podcast.Priority) string {
	return PriorityStyle(p).Render("[" + strings.ToUpper(string(p)) + "]")
}

func domainTitle(d podcast.Domain) string {
	switch d {
	case podcast.DomainCommercial:
		return "商业化价值"
	case podcast.DomainViral:
		return "传播价值"
	case podcast.DomainRisk:
		return "风险预警"
	default:
		return string(d)
	}
}

// Suggestion renders one suggestion with its relative value block.
func Suggestion(s podcast.Suggestion) string {
	var sb strings.Builder
	base := s.Base()
	rv := s.Relative()

	sb.WriteString(fmt.Sprintf(" %s %s %s\n", PriorityBadge(base.Priority), StyleBold.Render(domainTitle(s.Domain())), base.Title))
	if base.Position != "" {
		sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("位置"), base.Position))
	}
	if base.Content != "" {
		sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("内容"), base.Content))
	}
	sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("综合评分"), ScoreBar(s.OverallScore(), 20)))
	sb.WriteString(fmt.Sprintf("   %s %s（第%.0f百分位）\n", StyleLabel.Render("相对位置"), StyleBold.Render(rv.Rank), rv.Percentile))
	if rv.Explanation != "" {
		sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("评估说明"), rv.Explanation))
	}

	for _, c := range rv.ReferenceCases {
		line := fmt.Sprintf("%s（%s）", c.Description, c.AudienceSize)
		if c.PriceRange != "" {
			line += "，报价" + c.PriceRange
		}
		if c.EffectData != "" {
			line += "，" + c.EffectData
		}
		sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("参考案例"), StyleMuted.Render(line)))
	}

	cost := rv.AdoptionCost
	sb.WriteString(fmt.Sprintf("   %s %s · %s · %s\n", StyleLabel.Render("采纳成本"),
		cost.TimeRequired, difficultyLabel(cost.Difficulty), strings.Join(cost.Resources, "、")))

	if base.ActionableAdvice != "" {
		sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("行动建议"), base.ActionableAdvice))
	}

	sb.WriteString(variantDetail(s))
	return sb.String()
}

// variantDetail renders the fields specific to one suggestion variant.
func variantDetail(s podcast.Suggestion) string {
	var sb strings.Builder
	switch v := s.(type) {
	case *podcast.CommercialSuggestion:
		if len(v.AdFormats) > 0 {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("广告形式"), strings.Join(v.AdFormats, "、")))
		}
		if v.ScriptSample != "" {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("脚本示例"), StyleMuted.Render(v.ScriptSample)))
		}
	case *podcast.ViralSuggestion:
		if len(v.DistributionPaths) > 0 {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("分发路径"), strings.Join(v.DistributionPaths, "、")))
		}
		if v.ContentStrategy != "" {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("内容策略"), v.ContentStrategy))
		}
	case *podcast.RiskSuggestion:
		if v.PotentialImpact != "" {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("潜在影响"), StyleError.Render(v.PotentialImpact)))
		}
		if v.OriginalStatement != "" {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("原始表述"), StyleMuted.Render(v.OriginalStatement)))
		}
		if v.RevisedStatement != "" {
			sb.WriteString(fmt.Sprintf("   %s %s\n", StyleLabel.Render("修订表述"), v.RevisedStatement))
		}
	}
	return sb.String()
}

func difficultyLabel(d podcast.Difficulty) string {
	switch d {
	case podcast.DifficultyEasy:
		return "容易"
	case podcast.DifficultyHard:
		return "困难"
	default:
		return "中等"
	}
}

// AlertBlock renders the critical-content block shown when alert-worthy
// findings exist.
func AlertBlock(worthy []podcast.Suggestion) string {
	if len(worthy) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(Section(fmt.Sprintf("⚠ 高价值内容提醒（%d）", len(worthy))))
	sb.WriteString("\n")
	for _, s := range worthy {
		sb.WriteString(fmt.Sprintf(" %s %s %s %s\n",
			PriorityBadge(s.Base().Priority),
			StyleBold.Render(domainTitle(s.Domain())),
			s.Base().Title,
			StyleMuted.Render(s.Relative().Rank)))
	}
	return sb.String()
}

// DisciplineRecord renders one observation batch.
func DisciplineRecord(r podcast.DisciplineRecord) string {
	var sb strings.Builder
	head := fmt.Sprintf(" %s · %s", StyleBold.Render(string(r.Discipline)), r.Date)
	if r.Severity != "" {
		head += " · " + severityLabel(r.Severity)
	}
	sb.WriteString(head + "\n")
	if r.SourceTitle != "" {
		sb.WriteString(fmt.Sprintf("   %s\n", StyleMuted.Render(r.SourceTitle)))
	}
	for _, obs := range r.Observations {
		sb.WriteString(fmt.Sprintf("   - %s\n", obs))
	}
	return sb.String()
}

func severityLabel(s podcast.Severity) string {
	switch s {
	case podcast.SeverityHigh:
		return StyleCritical.Render("严重")
	case podcast.SeverityMedium:
		return StyleHigh.Render("中等")
	default:
		return StyleLow.Render("轻微")
	}
}
