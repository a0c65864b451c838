package rowstore

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

func TestRow_GetSet(t *testing.T) {
	row := NewRow(3, domain.WorkRecordFields, []string{"r-1", `{"account_id":"111"}`, "{}", "Off", ""})

	status, err := row.Get(domain.FieldStatus)
	require.NoError(t, err)
	assert.Equal(t, "Off", status)

	require.NoError(t, row.Set(domain.FieldStatus, "Done"))
	assert.Equal(t, "Done", row.MustGet(domain.FieldStatus))

	_, err = row.Get("Nope")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.ErrorIs(t, row.Set("Nope", "x"), ErrUnknownField)
	assert.Equal(t, "", row.MustGet("Nope"))
}

func TestRow_ValuesIsACopy(t *testing.T) {
	source := []string{"r-1", "", "", "", ""}
	row := NewRow(0, domain.WorkRecordFields, source)

	source[0] = "changed"
	values := row.Values()
	values[0] = "changed too"

	assert.Equal(t, "r-1", row.MustGet(domain.FieldID))
}

func TestMemoryStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil, [][]string{
		{"r-0", `{"account_id":"111"}`, "", "Off", ""},
		{"r-1", `{"account_id":"222"}`, "", "", ""},
	})

	row, err := store.Load(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, row.Set(domain.FieldStatus, "Running"))

	// O snapshot não toca o armazenamento antes do Save
	assert.Equal(t, "", store.Snapshot()[1][3])

	require.NoError(t, store.Save(ctx, row))

	want := [][]string{
		{"r-0", `{"account_id":"111"}`, "", "Off", ""},
		{"r-1", `{"account_id":"222"}`, "", "Running", ""},
	}
	if diff := cmp.Diff(want, store.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	_, err = store.Load(ctx, 5)
	assert.ErrorIs(t, err, ErrRowNotFound)
	assert.ErrorIs(t, store.Save(ctx, NewRow(9, domain.WorkRecordFields, nil)), ErrRowNotFound)
}

func TestMemoryStore_AccountIDs(t *testing.T) {
	store := NewMemoryStore(nil, [][]string{
		{"r-0", `{"account_id":"123-456-7890"}`},
		{"r-1", ``},
		{"r-2", `not json`},
		{"r-3", `{"account_id":5550001111}`},
	})

	accounts, err := store.AccountIDs(context.Background())
	require.NoError(t, err)

	want := []RowAccount{
		{Index: 0, AccountID: "1234567890"},
		{Index: 1, AccountID: ""},
		{Index: 2, AccountID: ""},
		{Index: 3, AccountID: "5550001111"},
	}
	if diff := cmp.Diff(want, accounts); diff != "" {
		t.Errorf("account ids mismatch (-want +got):\n%s", diff)
	}
}
