package domain

// Campos da tabela de trabalho, na ordem das colunas
const (
	FieldID             = "ID"
	FieldAdsMetadata    = "AdsMetadata"
	FieldVideoMetadata  = "VideoMetadata"
	FieldStatus         = "Status"
	FieldGeneratedVideo = "GeneratedVideo"
)

// WorkRecordFields é o schema compartilhado por todas as linhas
var WorkRecordFields = []string{
	FieldID,
	FieldAdsMetadata,
	FieldVideoMetadata,
	FieldStatus,
	FieldGeneratedVideo,
}

// AdsMetadata é o JSON da coluna AdsMetadata. AccountID é imutável após a criação da linha.
type AdsMetadata struct {
	AccountID      string `json:"account_id"`
	CampaignName   string `json:"campaign_name"`
	AdGroupName    string `json:"ad_group_name"`
	AdGroupType    string `json:"ad_group_type"`
	AdName         string `json:"ad_name"`
	AudienceName   string `json:"audience_name"`
	TargetLocation string `json:"target_location"`
	URL            string `json:"url"`
	CallToAction   string `json:"call_to_action"`

	// Campos desconhecidos são preservados ao regravar a célula
	Extra map[string]any `json:"-"`
}

// VideoMetadata é o JSON da coluna VideoMetadata
type VideoMetadata struct {
	BaseVideo string `json:"base_video"`

	Extra map[string]any `json:"-"`
}

// WorkRecord é a visão tipada de uma linha da tabela
type WorkRecord struct {
	RowIndex       int
	ID             string
	Ads            AdsMetadata
	Video          VideoMetadata
	Status         Status
	GeneratedVideo string
}

func (r *WorkRecord) AccountID() string {
	return r.Ads.AccountID
}
