package adsdomain

// SearchResponse é a página devolvida por googleAds:search
type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken"`
}

// SearchRow traz apenas os recursos selecionados na consulta GAQL
type SearchRow struct {
	Campaign          *Campaign          `json:"campaign,omitempty"`
	CampaignCriterion *CampaignCriterion `json:"campaignCriterion,omitempty"`
	AdGroup           *AdGroup           `json:"adGroup,omitempty"`
	AdGroupAd         *AdGroupAd         `json:"adGroupAd,omitempty"`
	UserList          *UserList          `json:"userList,omitempty"`
	BatchJob          *BatchJob          `json:"batchJob,omitempty"`
}

type Campaign struct {
	ResourceName           string `json:"resourceName"`
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	AdvertisingChannelType string `json:"advertisingChannelType"`
}

type CampaignCriterion struct {
	ResourceName string `json:"resourceName"`
	CriterionID  string `json:"criterionId"`
	Campaign     string `json:"campaign"`
	Location     *struct {
		GeoTargetConstant string `json:"geoTargetConstant"`
	} `json:"location,omitempty"`
}

type AdGroup struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Campaign     string `json:"campaign"`
}

type AdGroupAd struct {
	ResourceName string `json:"resourceName"`
	Status       string `json:"status"`
	AdGroup      string `json:"adGroup"`
	Ad           struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"ad"`
}

type UserList struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
}

type BatchJob struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Status       string `json:"status"`
}

// MutateResponse é a resposta de {recurso}:mutate
type MutateResponse struct {
	Results []struct {
		ResourceName string `json:"resourceName"`
	} `json:"results"`
}
