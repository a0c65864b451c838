package domain

type EntityStatus string

const (
	EntityEnabled EntityStatus = "ENABLED"
	EntityPaused  EntityStatus = "PAUSED"
	EntityRemoved EntityStatus = "REMOVED"
)

type AdType string

const (
	AdTypeVideo AdType = "VIDEO"
	AdTypeImage AdType = "IMAGE"
)

// Tipos de grupo de anúncios de vídeo suportados
const (
	AdGroupTypeInStream             = "VIDEO_TRUE_VIEW_IN_STREAM"
	AdGroupTypeNonSkippableInStream = "VIDEO_NON_SKIPPABLE_IN_STREAM"
	AdGroupTypeInDisplay            = "VIDEO_TRUE_VIEW_IN_DISPLAY"
	AdGroupTypeBumper               = "VIDEO_BUMPER"
	AdGroupTypeDisplay              = "DISPLAY_STANDARD"
)

type AdGroup struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	CampaignID   string       `json:"campaign_id"`
	CampaignName string       `json:"campaign_name"`
	Type         string       `json:"type"`
	Status       EntityStatus `json:"status"`
	ResourceName string       `json:"resource_name"`
}

type Ad struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AdGroupID    string       `json:"ad_group_id"`
	Type         AdType       `json:"type"`
	Status       EntityStatus `json:"status"`
	ResourceName string       `json:"resource_name"`
}

// AdFilter restringe a listagem de anúncios. Campos vazios não filtram.
type AdFilter struct {
	Type       AdType
	Status     EntityStatus
	NamePrefix string
	AdGroupID  string
}

type Audience struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ResourceName string `json:"resource_name"`
}

type VideoAdSpec struct {
	Name         string
	VideoID      string
	URL          string
	CallToAction string
}

type ImageAdSpec struct {
	Name    string
	ImageID string
	URL     string
}
