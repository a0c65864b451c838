package rowstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

// MemoryStore guarda a tabela em memória. Usado em dry-run e nos testes.
type MemoryStore struct {
	mu     sync.Mutex
	fields []string
	rows   [][]string
}

func NewMemoryStore(fields []string, rows [][]string) *MemoryStore {
	if fields == nil {
		fields = domain.WorkRecordFields
	}
	store := &MemoryStore{fields: fields}
	for _, values := range rows {
		store.append(values)
	}
	return store
}

// Insert adiciona uma linha ao fim da tabela e devolve o índice dela
func (s *MemoryStore) Insert(_ context.Context, values []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.append(values), nil
}

func (s *MemoryStore) append(values []string) int {
	row := make([]string, len(s.fields))
	copy(row, values)
	s.rows = append(s.rows, row)
	return len(s.rows) - 1
}

func (s *MemoryStore) AccountIDs(_ context.Context) ([]RowAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column := -1
	for i, field := range s.fields {
		if field == domain.FieldAdsMetadata {
			column = i
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, domain.FieldAdsMetadata)
	}

	accounts := make([]RowAccount, 0, len(s.rows))
	for i, row := range s.rows {
		accounts = append(accounts, RowAccount{Index: i, AccountID: AccountIDFromAdsMetadata(row[column])})
	}
	return accounts, nil
}

func (s *MemoryStore) Load(_ context.Context, rowIndex int) (*Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rowIndex < 0 || rowIndex >= len(s.rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, rowIndex)
	}
	return NewRow(rowIndex, s.fields, s.rows[rowIndex]), nil
}

func (s *MemoryStore) Save(_ context.Context, row *Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.Index < 0 || row.Index >= len(s.rows) {
		return fmt.Errorf("%w: %d", ErrRowNotFound, row.Index)
	}
	s.rows[row.Index] = row.Values()
	return nil
}

func (s *MemoryStore) Flush(_ context.Context) error {
	return nil
}

// Snapshot devolve uma cópia da tabela inteira
func (s *MemoryStore) Snapshot() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
