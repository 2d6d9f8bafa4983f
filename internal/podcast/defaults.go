package podcast

// DefaultUserProfile is the profile a fresh installation starts from.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		UserID: "default",
		Communication: CommunicationProfile{
			AccountStyle:    "知识分享型",
			AudienceProfile: "25-35岁职场人士",
			ContentThemes:   []string{"职场发展", "个人成长"},
			AvgEngagement:   3.5,
		},
		Business: BusinessProfile{
			InvestmentDiscount:  0.1,
			RiskTolerance:       SeverityMedium,
			MonetizationHistory: []string{},
		},
	}
}

// DefaultSettings alerts only on top-1% content with every lens enabled.
func DefaultSettings() UserSettings {
	return UserSettings{
		AlertThreshold: AlertThreshold{Enabled: true, Percentile: 1},
		SuggestionTypes: SuggestionToggles{
			Commercial: true,
			Viral:      true,
			Risk:       true,
		},
		Disciplines: DisciplineToggles{
			Law:           true,
			Psychology:    true,
			Business:      true,
			Health:        true,
			Communication: true,
		},
		AnalysisDepth: DepthStandard,
	}
}

// DefaultThresholds are the legacy absolute-mode alert thresholds.
func DefaultThresholds() ThresholdSettings {
	return ThresholdSettings{
		Money:          5000,
		Fans:           1000,
		EngagementRate: 5,
		BrandValue:     70,
	}
}
