package rowstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

func TestDecode(t *testing.T) {
	row := NewRow(7, domain.WorkRecordFields, []string{
		"r-7",
		`{"account_id":"111-222-3333","campaign_name":"Summer","ad_group_type":"VIDEO_BUMPER","audience_name":"a, b"}`,
		`{"base_video":"base"}`,
		"Video Ready",
		"v1,v2",
	})

	record, err := Decode(row)
	require.NoError(t, err)

	assert.Equal(t, 7, record.RowIndex)
	assert.Equal(t, "r-7", record.ID)
	assert.Equal(t, "1112223333", record.AccountID())
	assert.Equal(t, "Summer", record.Ads.CampaignName)
	assert.Equal(t, domain.AdGroupTypeBumper, record.Ads.AdGroupType)
	assert.Equal(t, "base", record.Video.BaseVideo)
	assert.Equal(t, domain.StatusVideoReady, record.Status)
	assert.Equal(t, "v1,v2", record.GeneratedVideo)
}

func TestDecode_ScalarValuesAsText(t *testing.T) {
	row := NewRow(3, domain.WorkRecordFields, []string{
		"r-3",
		`{"account_id":111,"campaign_name":"C","target_location":2076,"ad_name":true,"budget":12.50}`,
		`{"base_video":42}`,
		"Off",
		"",
	})

	record, err := Decode(row)
	require.NoError(t, err)

	assert.Equal(t, "111", record.AccountID())
	assert.Equal(t, "2076", record.Ads.TargetLocation)
	assert.Equal(t, "true", record.Ads.AdName)
	assert.Equal(t, "42", record.Video.BaseVideo)

	require.NoError(t, Encode(record, row))
	assert.Contains(t, row.MustGet(domain.FieldAdsMetadata), `"budget":12.50`)
	assert.Contains(t, row.MustGet(domain.FieldAdsMetadata), `"target_location":"2076"`)
}

func TestDecode_InvalidMetadata(t *testing.T) {
	row := NewRow(1, domain.WorkRecordFields, []string{"r-1", `{broken`, "", "Off", ""})

	_, err := Decode(row)
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		mutate   func(r *domain.WorkRecord)
		validate func(t *testing.T, row *Row)
	}{
		{
			name:   "preserva chaves desconhecidas e o account_id original",
			values: []string{"r-1", `{"account_id":"111-222-3333","ad_name":"Ad 1","owner":"ops"}`, `{"base_video":"b","length":30}`, "Off", "v"},
			mutate: func(r *domain.WorkRecord) {
				r.Ads.AdName = ""
				r.Ads.AccountID = "999"
				r.GeneratedVideo = ""
				r.Status = domain.StatusDone
			},
			validate: func(t *testing.T, row *Row) {
				ads := map[string]any{}
				require.NoError(t, json.UnmarshalFromString(row.MustGet(domain.FieldAdsMetadata), &ads))
				assert.Equal(t, "111-222-3333", ads["account_id"])
				assert.Equal(t, "ops", ads["owner"])
				assert.Equal(t, "", ads["ad_name"])

				video := map[string]any{}
				require.NoError(t, json.UnmarshalFromString(row.MustGet(domain.FieldVideoMetadata), &video))
				assert.Equal(t, float64(30), video["length"])

				assert.Equal(t, "Done", row.MustGet(domain.FieldStatus))
				assert.Equal(t, "", row.MustGet(domain.FieldGeneratedVideo))
			},
		},
		{
			name:   "células vazias viram objetos",
			values: []string{"r-2", "", "", "", ""},
			mutate: func(r *domain.WorkRecord) {
				r.Ads.CampaignName = "Winter"
			},
			validate: func(t *testing.T, row *Row) {
				ads := map[string]any{}
				require.NoError(t, json.UnmarshalFromString(row.MustGet(domain.FieldAdsMetadata), &ads))
				assert.Equal(t, "Winter", ads["campaign_name"])
				assert.Equal(t, "", AccountIDFromAdsMetadata(row.MustGet(domain.FieldAdsMetadata)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRow(0, domain.WorkRecordFields, tt.values)
			record, err := Decode(row)
			require.NoError(t, err)

			tt.mutate(record)
			require.NoError(t, Encode(record, row))

			tt.validate(t, row)
		})
	}
}
