package rowstore

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cellJSON mantém números como json.Number, preservando o texto digitado
// na célula ao regravar e ao converter para campos de texto
var cellJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Decode converte o snapshot da linha no registro tipado
func Decode(row *Row) (*domain.WorkRecord, error) {
	record := &domain.WorkRecord{
		RowIndex:       row.Index,
		ID:             row.MustGet(domain.FieldID),
		Status:         domain.Status(strings.TrimSpace(row.MustGet(domain.FieldStatus))),
		GeneratedVideo: row.MustGet(domain.FieldGeneratedVideo),
	}

	ads, err := decodeAdsMetadata(row.MustGet(domain.FieldAdsMetadata))
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", row.Index, err)
	}
	record.Ads = ads

	video, err := decodeVideoMetadata(row.MustGet(domain.FieldVideoMetadata))
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", row.Index, err)
	}
	record.Video = video

	return record, nil
}

// Encode grava o registro tipado de volta no snapshot. O account_id nunca é
// alterado: o valor lido da linha prevalece.
func Encode(record *domain.WorkRecord, row *Row) error {
	current, err := decodeAdsMetadata(row.MustGet(domain.FieldAdsMetadata))
	if err != nil {
		return fmt.Errorf("row %d: %w", row.Index, err)
	}

	ads := record.Ads
	ads.AccountID = current.AccountID

	adsCell, err := encodeObject(ads, current.Extra, "account_id")
	if err != nil {
		return err
	}
	videoCell, err := encodeObject(record.Video, record.Video.Extra)
	if err != nil {
		return err
	}

	values := map[string]string{
		domain.FieldID:             record.ID,
		domain.FieldAdsMetadata:    adsCell,
		domain.FieldVideoMetadata:  videoCell,
		domain.FieldStatus:         record.Status.String(),
		domain.FieldGeneratedVideo: record.GeneratedVideo,
	}
	for _, field := range domain.WorkRecordFields {
		if err := row.Set(field, values[field]); err != nil {
			return err
		}
	}
	return nil
}

// AccountIDFromAdsMetadata extrai o account_id da célula AdsMetadata,
// devolvendo vazio quando a célula está vazia ou não é um JSON válido
func AccountIDFromAdsMetadata(cell string) string {
	if strings.TrimSpace(cell) == "" {
		return ""
	}
	var probe struct {
		AccountID any `json:"account_id"`
	}
	if err := json.UnmarshalFromString(cell, &probe); err != nil {
		return ""
	}
	switch v := probe.AccountID.(type) {
	case string:
		return normalizeAccountID(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func normalizeAccountID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}

func decodeAdsMetadata(cell string) (domain.AdsMetadata, error) {
	var ads domain.AdsMetadata
	extra, err := decodeObject(cell, &ads)
	if err != nil {
		return domain.AdsMetadata{}, fmt.Errorf("invalid AdsMetadata: %w", err)
	}
	ads.Extra = extra
	ads.AccountID = AccountIDFromAdsMetadata(cell)
	return ads, nil
}

func decodeVideoMetadata(cell string) (domain.VideoMetadata, error) {
	var video domain.VideoMetadata
	extra, err := decodeObject(cell, &video)
	if err != nil {
		return domain.VideoMetadata{}, fmt.Errorf("invalid VideoMetadata: %w", err)
	}
	video.Extra = extra
	return video, nil
}

// decodeObject preenche out e devolve o objeto completo, para que chaves
// desconhecidas sobrevivam à regravação
func decodeObject(cell string, out any) (map[string]any, error) {
	if strings.TrimSpace(cell) == "" {
		return map[string]any{}, nil
	}

	raw := map[string]any{}
	if err := cellJSON.UnmarshalFromString(cell, &raw); err != nil {
		return nil, err
	}
	// a célula é editada à mão: números e booleanos valem como texto
	typed := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "account_id" {
			continue
		}
		typed[k] = scalarText(v)
	}
	payload, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return nil, err
	}
	return raw, nil
}

// scalarText converte números e booleanos para o texto que aparece na célula
func scalarText(v any) any {
	switch v.(type) {
	case nil, string, map[string]any, []any:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// encodeObject sobrepõe os campos conhecidos ao objeto original. As chaves
// em keep mantêm o valor original quando presentes.
func encodeObject(in any, extra map[string]any, keep ...string) (string, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	known := map[string]any{}
	if err := json.Unmarshal(payload, &known); err != nil {
		return "", err
	}

	merged := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range known {
		merged[k] = v
	}
	for _, k := range keep {
		if v, ok := extra[k]; ok {
			merged[k] = v
		}
	}
	return json.MarshalToString(merged)
}
