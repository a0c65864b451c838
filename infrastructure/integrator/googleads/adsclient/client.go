package adsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	Search(ctx context.Context, customerID, query string) ([]adsdomain.SearchRow, error)
	Mutate(ctx context.Context, customerID, resource string, operations []map[string]any) ([]string, error)
	CreateBatchJob(ctx context.Context, customerID string) (string, error)
	AddBatchJobOperations(ctx context.Context, resourceName string, operations []map[string]any) error
	RunBatchJob(ctx context.Context, resourceName string) error
}

type AdsClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	HTTP         *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &AdsClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		HTTP:         &http.Client{Timeout: 60 * time.Second},
	}
}

// Search executa uma consulta GAQL e percorre todas as páginas
func (c *AdsClient) Search(ctx context.Context, customerID, query string) ([]adsdomain.SearchRow, error) {
	path := fmt.Sprintf("customers/%s/googleAds:search", customerID)

	var (
		rows      []adsdomain.SearchRow
		pageToken string
	)
	for {
		payload := map[string]any{"query": query}
		if pageToken != "" {
			payload["pageToken"] = pageToken
		}

		body, err := c.post(ctx, customerID, path, payload)
		if err != nil {
			return nil, err
		}

		var page adsdomain.SearchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			logrus.WithError(err).Error("googleads: erro ao decodificar resposta da busca")
			return nil, err
		}

		rows = append(rows, page.Results...)
		if page.NextPageToken == "" {
			return rows, nil
		}
		pageToken = page.NextPageToken
	}
}

// Mutate aplica operações em um recurso (campaignCriteria, adGroups, adGroupAds...)
func (c *AdsClient) Mutate(ctx context.Context, customerID, resource string, operations []map[string]any) ([]string, error) {
	path := fmt.Sprintf("customers/%s/%s:mutate", customerID, resource)

	body, err := c.post(ctx, customerID, path, map[string]any{"operations": operations})
	if err != nil {
		return nil, err
	}

	var response adsdomain.MutateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("googleads: erro ao decodificar resposta do mutate")
		return nil, err
	}

	names := make([]string, 0, len(response.Results))
	for _, result := range response.Results {
		names = append(names, result.ResourceName)
	}
	return names, nil
}

func (c *AdsClient) CreateBatchJob(ctx context.Context, customerID string) (string, error) {
	path := fmt.Sprintf("customers/%s/batchJobs:mutate", customerID)

	body, err := c.post(ctx, customerID, path, map[string]any{
		"operation": map[string]any{"create": map[string]any{}},
	})
	if err != nil {
		return "", err
	}

	var response struct {
		Result struct {
			ResourceName string `json:"resourceName"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if response.Result.ResourceName == "" {
		return "", errors.New("googleads: batch job criado sem resource name")
	}
	return response.Result.ResourceName, nil
}

func (c *AdsClient) AddBatchJobOperations(ctx context.Context, resourceName string, operations []map[string]any) error {
	_, err := c.post(ctx, customerFromResource(resourceName), resourceName+":addOperations", map[string]any{
		"mutateOperations": operations,
	})
	return err
}

func (c *AdsClient) RunBatchJob(ctx context.Context, resourceName string) error {
	_, err := c.post(ctx, customerFromResource(resourceName), resourceName+":run", map[string]any{})
	return err
}

// post envia a requisição autenticada e repete uma vez se o token foi renovado
func (c *AdsClient) post(ctx context.Context, customerID, path string, payload any) ([]byte, error) {
	if err := c.TokenManager.EnsureValidToken(ctx); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		body, err := c.do(ctx, customerID, path, encoded)
		if errors.Is(err, ErrTokenRefreshed) && attempt == 0 {
			continue
		}
		return body, err
	}
}

func (c *AdsClient) do(ctx context.Context, customerID, path string, encoded []byte) ([]byte, error) {
	endpoint := strings.TrimRight(c.Cfg.GoogleAds.URL, "/") + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.TokenManager.AccessToken())
	req.Header.Set("developer-token", c.Cfg.GoogleAds.DeveloperToken)
	if c.Cfg.GoogleAds.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", c.Cfg.GoogleAds.LoginCustomerID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"path":        path,
		}).WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	return c.TokenManager.HandleResponse(ctx, resp)
}

// customerFromResource extrai o id do cliente de "customers/{id}/..."
func customerFromResource(resourceName string) string {
	parts := strings.Split(resourceName, "/")
	if len(parts) >= 2 && parts[0] == "customers" {
		return parts[1]
	}
	return ""
}
