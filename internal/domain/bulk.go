package domain

// BulkStage é uma etapa ordenada do upload em massa
type BulkStage string

const (
	BulkStageCampaigns BulkStage = "campaigns"
	BulkStageAdGroups  BulkStage = "ad_groups"
	BulkStageAds       BulkStage = "ads"
)

// BulkStages na ordem obrigatória de submissão
var BulkStages = []BulkStage{BulkStageCampaigns, BulkStageAdGroups, BulkStageAds}

type BulkJobStatus string

const (
	BulkJobPending BulkJobStatus = "PENDING"
	BulkJobRunning BulkJobStatus = "RUNNING"
	BulkJobDone    BulkJobStatus = "DONE"
	BulkJobFailed  BulkJobStatus = "FAILED"
)

type BulkJob struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Stage      BulkStage     `json:"stage"`
	Status     BulkJobStatus `json:"status"`
}

// Settled indica que o job terminou, com sucesso ou não
func (j *BulkJob) Settled() bool {
	return j.Status == BulkJobDone || j.Status == BulkJobFailed
}
