package handler

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/heartbeat"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/activation"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/bulkupload"
	"github.com/vfg2006/campaign-orchestrator/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tipos de execução disparáveis pela API
const (
	RunTypeDispatch = "dispatch"
	RunTypeUpload   = "upload"
	RunTypeCutover  = "cutover"
)

// RunTrigger é o agendador de execuções do dispatcher
type RunTrigger interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
	LastAccounts() []string
}

// RunServices contém os serviços disparados manualmente
type RunServices struct {
	Campaigns     RunTrigger
	Upload        bulkupload.Orchestrator
	Activation    activation.Activator
	Heartbeats    heartbeat.Recorder
	CutoverPrefix string

	uploading atomic.Bool
}

type cutoverRequest struct {
	Prefix string `json:"prefix"`
}

// StartRun dispara manualmente uma execução
func StartRun(services *RunServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logrus.WithField("type", runType).Info("INIT - StartRun")

		switch runType {
		case RunTypeDispatch:
			if services.Campaigns == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de campanhas não disponível", nil)
				return
			}
			if !services.Campaigns.TriggerManualSync(r.Context()) {
				apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Execução de campanhas já em andamento", nil)
				return
			}
			writeAccepted(w, runType)

		case RunTypeUpload:
			if services.Upload == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Upload em massa não disponível", nil)
				return
			}
			if !services.uploading.CompareAndSwap(false, true) {
				apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Upload em massa já em andamento", nil)
				return
			}
			go func(ctx context.Context) {
				defer services.uploading.Store(false)
				if err := services.Upload.RunUploadPipeline(ctx); err != nil {
					logrus.WithError(err).Error("Upload em massa terminou com erro")
				}
			}(context.WithoutCancel(r.Context()))
			writeAccepted(w, runType)

		case RunTypeCutover:
			if services.Activation == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Troca de anúncios não disponível", nil)
				return
			}

			prefix := services.CutoverPrefix
			if r.ContentLength != 0 {
				var req cutoverRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
					return
				}
				if strings.TrimSpace(req.Prefix) != "" {
					prefix = req.Prefix
				}
			}
			if prefix == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Prefixo dos anúncios não informado", nil)
				return
			}

			if err := services.Activation.Cutover(r.Context(), prefix); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
				return
			}

			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Troca de anúncios concluída",
				"type":    runType,
				"prefix":  prefix,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de execução inválido. Valores aceitos: dispatch, upload, cutover", nil)
		}
	}
}

// GetRunStatus retorna o status do agendador e o último heartbeat de cada conta
func GetRunStatus(services *RunServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRunStatus")

		status := map[string]any{
			"upload_running": services.uploading.Load(),
		}
		if services.Campaigns == nil {
			writeJSON(w, http.StatusOK, status)
			return
		}
		status["dispatch"] = services.Campaigns.GetStatus()

		heartbeats := make([]domain.Heartbeat, 0)
		if services.Heartbeats != nil {
			for _, accountID := range services.Campaigns.LastAccounts() {
				hb, ok, err := services.Heartbeats.Latest(r.Context(), accountID)
				if err != nil {
					logrus.WithError(err).WithField("account_id", accountID).Warn("Erro ao consultar heartbeat")
					continue
				}
				if ok {
					heartbeats = append(heartbeats, hb)
				}
			}
		}
		status["heartbeats"] = heartbeats

		writeJSON(w, http.StatusOK, status)
	}
}

func writeAccepted(w http.ResponseWriter, runType string) {
	writeJSON(w, http.StatusAccepted, map[string]any{
		"message": "Execução iniciada com sucesso",
		"type":    runType,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("Erro ao codificar resposta")
	}
}
