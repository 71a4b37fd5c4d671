package models

// UserStats aggregates registration and moderation counts.
type UserStats struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Banned      int64 `json:"banned"`
	NewToday    int64 `json:"new_today"`
	NewThisWeek int64 `json:"new_this_week"`
}

// EngagementStats aggregates matchmaking and messaging activity.
type EngagementStats struct {
	TotalMatches  int64  `json:"total_matches"`
	TotalMessages int64  `json:"total_messages"`
	TotalPhotos   int64  `json:"total_photos"`
	AvgMessages   string `json:"avg_messages_per_user"`
}

// RevenueStats projects subscription revenue from active premium counts.
type RevenueStats struct {
	PremiumSubscriptions int64  `json:"premium_subscriptions"`
	MonthlyRevenue       string `json:"monthly_revenue"`
	AnnualRevenue        string `json:"annual_revenue"`
}

// AdminStats is the moderation panel dashboard payload.
type AdminStats struct {
	Users      UserStats       `json:"users"`
	Engagement EngagementStats `json:"engagement"`
	Revenue    RevenueStats    `json:"revenue"`
}
