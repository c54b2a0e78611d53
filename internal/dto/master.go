package dto

type StatisticsResponse struct {
	MasterID          uint   `json:"masterId"`
	AverageCheck      string `json:"averageCheck"`
	DailyRevenue      string `json:"dailyRevenue"`
	NetTurnover10Days string `json:"netTurnover10Days"`
}

type TierResponse struct {
	MasterID        uint   `json:"masterId"`
	Tier            int    `json:"tier"`
	VisibilityHours int    `json:"visibilityHours"`
	Mode            string `json:"mode"`
}

type SetTierRequest struct {
	Tier int `json:"tier"`
}

type ProfitSettingsRequest struct {
	MasterPaid    int `json:"masterPaid"`
	MasterBalance int `json:"masterBalance"`
	Curator       int `json:"curator"`
	Company       int `json:"company"`
}

type BalanceAdjustmentRequest struct {
	Delta  string `json:"delta"`
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

type BalanceAdjustmentResponse struct {
	MasterID      uint   `json:"masterId"`
	Delta         string `json:"delta"`
	BalanceBefore string `json:"balanceBefore"`
	BalanceAfter  string `json:"balanceAfter"`
}
