package session

import (
	"fmt"
	"strings"

	"github.com/echosense-labs/echosense/internal/cases"
	"github.com/echosense-labs/echosense/internal/podcast"
)

// systemPrompt frames the generation service's role for every run.
const systemPrompt = "你是EchoSense播客分析专家，专注于帮助创作者识别内容的商业价值、传播潜力和风险点。" +
	"你的评估必须以参考案例为依据，输出相对分位而非绝对承诺。"

// extractionInstruction is sent alongside a URL to the extraction service.
const extractionInstruction = "请提取这个播客的完整文字内容，包括所有对话和讨论的要点"

// caseSampleCount is how many exemplars per domain are injected into the
// prompt. Order is significant; the library returns them by priority.
const caseSampleCount = 2

// buildPrompt assembles the user message for one generation call from the
// transcript, the creator profile, the enabled analysis dimensions, and
// case-library excerpts.
func buildPrompt(transcript string, profile podcast.UserProfile, settings podcast.UserSettings, library *cases.Library) string {
	var sb strings.Builder

	sb.WriteString("请对以下播客内容进行价值评估。\n\n")
	sb.WriteString("## 播客内容\n\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\n")

	sb.WriteString("## 创作者画像\n\n")
	sb.WriteString(fmt.Sprintf("- 账号风格：%s\n", profile.Communication.AccountStyle))
	sb.WriteString(fmt.Sprintf("- 受众画像：%s\n", profile.Communication.AudienceProfile))
	if len(profile.Communication.ContentThemes) > 0 {
		sb.WriteString(fmt.Sprintf("- 内容主题：%s\n", strings.Join(profile.Communication.ContentThemes, "、")))
	}
	sb.WriteString(fmt.Sprintf("- 平均互动率：%.1f%%\n", profile.Communication.AvgEngagement))
	sb.WriteString(fmt.Sprintf("- 风险承受能力：%s\n", profile.Business.RiskTolerance))
	sb.WriteString("\n")

	sb.WriteString("## 分析维度\n\n")
	if settings.SuggestionTypes.Commercial {
		sb.WriteString("- 商业化价值：识别可商业化的情绪高峰点，评估自然嵌入可能性、受众明确度、观点闭环完整性（各0-100）\n")
	}
	if settings.SuggestionTypes.Viral {
		sb.WriteString("- 传播价值：识别可传播的观点爆点，评估反直觉程度、与主流叙事冲突性、可切片性（各0-100）\n")
	}
	if settings.SuggestionTypes.Risk {
		sb.WriteString("- 风险预警：检测潜在舆论风险点，评估观点极端度、事实不确定性、群体标签触及度（各0-100）\n")
	}
	sb.WriteString("\n")

	writeCaseSection(&sb, "商业化参考案例", library.Sample(podcast.DomainCommercial, caseSampleCount), settings.SuggestionTypes.Commercial)
	writeCaseSection(&sb, "传播参考案例", library.Sample(podcast.DomainViral, caseSampleCount), settings.SuggestionTypes.Viral)
	writeCaseSection(&sb, "风险参考案例", library.Sample(podcast.DomainRisk, caseSampleCount), settings.SuggestionTypes.Risk)

	sb.WriteString("## 学科观察\n\n")
	sb.WriteString("从以下学科视角记录关于创作者的事实性观察（不是建议）：")
	var lenses []string
	for _, d := range podcast.FixedDisciplines {
		if settings.Disciplines.Enabled(d) {
			lenses = append(lenses, string(d))
		}
	}
	sb.WriteString(strings.Join(lenses, "、"))
	sb.WriteString("\n\n")

	sb.WriteString(depthInstruction(settings.AnalysisDepth))
	sb.WriteString("\n\n")

	sb.WriteString("## 输出格式\n\n")
	sb.WriteString("输出一个JSON代码块，形如：\n")
	sb.WriteString("```json\n")
	sb.WriteString(`{"suggestions": [{"type": "commercial|viral|risk", "id": "", "position": "第15分钟30秒", "timeRange": "", "content": "段落摘录", "title": "", "actionableAdvice": "", ...}], "disciplines": [{"discipline": "law", "date": "YYYY-MM-DD", "sourceTitle": "", "observations": ["事实性观察"], "severity": "low|medium|high"}]}`)
	sb.WriteString("\n```\n")
	sb.WriteString("commercial项包含compatibility评分与adFormats、scriptSample；viral项包含viralPotential评分与distributionPaths、contentStrategy；risk项包含riskAnalysis评分与potentialImpact、originalStatement、revisedStatement。没有值得标注的内容时输出空数组。\n")

	return sb.String()
}

func writeCaseSection(sb *strings.Builder, title string, entries []podcast.ReferenceCase, enabled bool) {
	if !enabled || len(entries) == 0 {
		return
	}
	sb.WriteString("## ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for _, c := range entries {
		sb.WriteString(fmt.Sprintf("- %s（%s，%s）", c.Description, c.Context, c.AudienceSize))
		if c.PriceRange != "" {
			sb.WriteString(fmt.Sprintf("，报价%s", c.PriceRange))
		}
		if c.EffectData != "" {
			sb.WriteString(fmt.Sprintf("，效果%s", c.EffectData))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func depthInstruction(depth podcast.AnalysisDepth) string {
	switch depth {
	case podcast.DepthBasic:
		return "分析深度：基础分析，仅识别最关键的高价值内容。"
	case podcast.DepthDetailed:
		return "分析深度：深度分析，包含详细的案例匹配和多维度评估。"
	default:
		return "分析深度：标准分析，提供全面的价值评估和建议。"
	}
}
