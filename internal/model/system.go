package model

// SystemStats 系统统计数据
type SystemStats struct {
	TotalUsers    int                    `json:"total_users"`
	TotalProducts int                    `json:"total_products"`
	TotalOrders   int                    `json:"total_orders"`
	Errors        map[string]interface{} `json:"errors"`
}
