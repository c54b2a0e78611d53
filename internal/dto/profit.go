package dto

type ProfitSettingsUsed struct {
	SettingsID    uint   `json:"settingsId"`
	Scope         string `json:"scope"`
	MasterPaid    int    `json:"masterPaid"`
	MasterBalance int    `json:"masterBalance"`
	Curator       int    `json:"curator"`
	Company       int    `json:"company"`
}

type ProfitDistributionResponse struct {
	OrderID       uint               `json:"orderId"`
	FinalCost     string             `json:"finalCost"`
	MasterPaid    string             `json:"masterPaid"`
	MasterBalance string             `json:"masterBalance"`
	Curator       string             `json:"curator"`
	Company       string             `json:"company"`
	SettingsUsed  ProfitSettingsUsed `json:"settingsUsed"`
}
