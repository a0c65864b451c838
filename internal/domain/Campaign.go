package domain

type CampaignType string

const (
	CampaignTypeAny   CampaignType = ""
	CampaignTypeVideo CampaignType = "VIDEO"
)

type Campaign struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	CustomerID   string       `json:"customer_id"`
	Type         CampaignType `json:"type"`
	ResourceName string       `json:"resource_name"`
}

// LocationTarget é um critério de localização anexado a uma campanha
type LocationTarget struct {
	CampaignID   string `json:"campaign_id"`
	CriterionID  string `json:"criterion_id"`
	LocationID   int64  `json:"location_id"`
	ResourceName string `json:"resource_name"`
}
