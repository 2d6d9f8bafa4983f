// Package cases holds the curated reference-case corpora used to ground
// percentile claims. The corpora are fixed at build time; a user-supplied
// override set may replace a domain's corpus wholesale at load, after which
// the library is read-only.
package cases

import "github.com/echosense-labs/echosense/internal/podcast"

// commercialLibrary: prior commercial collaborations, ordered by exemplar
// priority (earlier entries are injected into prompts first).
var commercialLibrary = []podcast.ReferenceCase{
	{
		ID:           "comm_001",
		Description:  "职场效率工具推荐场景",
		Context:      "创业者讨论办公软件使用体验，自然过渡到产品推荐",
		AudienceSize: "5-10万粉丝",
		PriceRange:   "8000-15000元",
		Source:       "2024年职场类播客商业合作数据",
	},
	{
		ID:           "comm_002",
		Description:  "生活方式品牌植入",
		Context:      "分享个人生活习惯时提及产品使用感受",
		AudienceSize: "10-30万粉丝",
		PriceRange:   "15000-30000元",
		Source:       "2024年生活方式类播客商业合作数据",
	},
	{
		ID:           "comm_003",
		Description:  "知识付费课程推广",
		Context:      "深度讲解某专业领域知识后推荐系统课程",
		AudienceSize: "3-8万粉丝",
		PriceRange:   "5000-12000元",
		Source:       "2024年知识类播客商业合作数据",
	},
	{
		ID:           "comm_004",
		Description:  "消费品测评合作",
		Context:      "真实使用体验分享，包含产品优缺点",
		AudienceSize: "8-20万粉丝",
		PriceRange:   "10000-25000元",
		Source:       "2024年测评类播客商业合作数据",
	},
}

var viralLibrary = []podcast.ReferenceCase{
	{
		ID:           "viral_001",
		Description:  "反常识职场观点",
		Context:      "提出与主流认知相反的职场发展路径",
		AudienceSize: "触达10-50万人",
		EffectData:   "小红书传播，互动率提升5-8%",
		Source:       "2024年职场话题传播数据",
	},
	{
		ID:           "viral_002",
		Description:  "代际认知差异讨论",
		Context:      "揭示不同年龄段的隐蔽差异",
		AudienceSize: "触达20-100万人",
		EffectData:   "知乎话题讨论，引用量300+",
		Source:       "2024年社会话题传播数据",
	},
	{
		ID:           "viral_003",
		Description:  "行业内幕揭秘",
		Context:      "从业者视角分享行业真实情况",
		AudienceSize: "触达15-80万人",
		EffectData:   "多平台传播，视频播放量100万+",
		Source:       "2024年行业话题传播数据",
	},
}

var riskLibrary = []podcast.ReferenceCase{
	{
		ID:           "risk_001",
		Description:  "行业绝对化评价",
		Context:      "对某行业进行极端负面评价",
		AudienceSize: "影响3000-8000粉丝",
		EffectData:   "评论区极化，互动率下降3-8%",
		Source:       "2024年播客争议事件数据",
	},
	{
		ID:           "risk_002",
		Description:  "未经证实的事实陈述",
		Context:      "传播未经核实的信息或数据",
		AudienceSize: "影响5000-15000粉丝",
		EffectData:   "可能面临法律风险，需公开澄清",
		Source:       "2024年播客法律风险案例",
	},
	{
		ID:           "risk_003",
		Description:  "敏感群体标签化",
		Context:      "对特定群体进行刻板印象描述",
		AudienceSize: "影响2000-10000粉丝",
		EffectData:   "引发群体反感，掉粉率2-5%",
		Source:       "2024年播客舆论风险案例",
	},
}

// Library exposes read-only access to the per-domain case corpora.
type Library struct {
	byDomain map[podcast.Domain][]podcast.ReferenceCase
}

// NewLibrary returns a library backed by the built-in corpora.
func NewLibrary() *Library {
	return &Library{
		byDomain: map[podcast.Domain][]podcast.ReferenceCase{
			podcast.DomainCommercial: commercialLibrary,
			podcast.DomainViral:      viralLibrary,
			podcast.DomainRisk:       riskLibrary,
		},
	}
}

// NewLibraryWithOverrides returns a library where any domain present in
// overrides with a non-empty list replaces the built-in corpus. Extending
// the corpus is a data change, not a runtime mutation: the result is still
// read-only.
func NewLibraryWithOverrides(overrides map[podcast.Domain][]podcast.ReferenceCase) *Library {
	lib := NewLibrary()
	for domain, entries := range overrides {
		if len(entries) > 0 {
			lib.byDomain[domain] = entries
		}
	}
	return lib
}

// Lookup returns the ordered case list for a domain. The returned slice
// must not be modified.
func (l *Library) Lookup(domain podcast.Domain) []podcast.ReferenceCase {
	return l.byDomain[domain]
}

// Sample returns the first n entries for a domain, for injection into a
// generation prompt. Order is significant: earlier entries are treated as
// higher-priority exemplars.
func (l *Library) Sample(domain podcast.Domain, n int) []podcast.ReferenceCase {
	entries := l.byDomain[domain]
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
