package adsclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
)

// ErrTokenRefreshed indica que a requisição falhou por token expirado e que
// um token novo já está disponível
var ErrTokenRefreshed = errors.New("token expirado e renovado, por favor tente novamente")

// TokenManager gerencia o access token OAuth da API do Google Ads
type TokenManager struct {
	cfg         *config.Config
	httpClient  *http.Client
	mu          sync.Mutex
	stopRefresh chan struct{}
	stopOnce    sync.Once
}

func NewTokenManager(cfg *config.Config, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TokenManager{
		cfg:         cfg,
		httpClient:  httpClient,
		stopRefresh: make(chan struct{}),
	}
}

// StartAutoRefresh renova o token periodicamente até StopAutoRefresh
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	if err := tm.RefreshToken(ctx); err != nil {
		logrus.Errorf("Erro ao iniciar o token do Google Ads: %v", err)
	}

	refreshInterval := 45 * time.Minute
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token do Google Ads")
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(5 * time.Minute)
			} else {
				ticker.Reset(refreshInterval)
			}
		case <-ctx.Done():
			return
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		}
	}
}

func (tm *TokenManager) StopAutoRefresh() {
	tm.stopOnce.Do(func() { close(tm.stopRefresh) })
}

// AccessToken devolve o token atual
func (tm *TokenManager) AccessToken() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.cfg.GoogleAds.AccessToken
}

func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tokenResponse, err := ExchangeRefreshToken(
		ctx,
		tm.httpClient,
		tm.cfg.GoogleAds.TokenURL,
		tm.cfg.GoogleAds.ClientID,
		tm.cfg.GoogleAds.ClientSecret,
		tm.cfg.GoogleAds.RefreshToken,
	)
	if err != nil {
		return fmt.Errorf("erro ao obter novo access token: %w", err)
	}

	tm.cfg.GoogleAds.AccessToken = tokenResponse.AccessToken
	tm.cfg.GoogleAds.TokenExpiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)

	logrus.Debugf("Token do Google Ads renovado. Válido até: %s",
		tm.cfg.GoogleAds.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// EnsureValidToken renova o token quando ausente ou perto de expirar
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	tm.mu.Lock()
	expired := tm.cfg.GoogleAds.AccessToken == "" || time.Now().After(tm.cfg.GoogleAds.TokenExpiresAt)
	tm.mu.Unlock()

	if !expired {
		return nil
	}
	return tm.RefreshToken(ctx)
}

// HandleResponse lê o corpo e converte respostas de erro em *adsdomain.APIError
func (tm *TokenManager) HandleResponse(ctx context.Context, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, tm.handleErrorResponse(ctx, resp.StatusCode, body)
}

func (tm *TokenManager) handleErrorResponse(ctx context.Context, statusCode int, body []byte) error {
	var errorResp adsdomain.ErrorResponse
	if parseErr := json.Unmarshal(body, &errorResp); parseErr != nil {
		return &adsdomain.APIError{HTTPStatus: statusCode, Message: string(body)}
	}

	if errorResp.IsTokenExpired() {
		logrus.Warnf("Token expirado detectado pela API do Google Ads: %s", errorResp.Error.Message)
		if refreshErr := tm.RefreshToken(ctx); refreshErr != nil {
			return fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
		}
		return ErrTokenRefreshed
	}

	return &adsdomain.APIError{
		HTTPStatus: statusCode,
		Status:     errorResp.Error.Status,
		Message:    errorResp.Error.Message,
	}
}
