// Package rowstore é o acesso por linha à tabela de trabalho. Uma linha é
// carregada inteira, alterada em memória e regravada inteira no Save.
package rowstore

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnknownField = errors.New("rowstore: unknown field")
	ErrRowNotFound  = errors.New("rowstore: row not found")
)

// Row é o snapshot de uma linha. Get e Set não tocam o armazenamento.
type Row struct {
	Index  int
	fields []string
	values []string
}

// RowAccount é uma entrada da coluna de contas: o índice da linha e o
// account_id dela (vazio quando ausente ou ilegível)
type RowAccount struct {
	Index     int
	AccountID string
}

type Store interface {
	// AccountIDs varre a coluna de contas, uma entrada por linha, em ordem
	AccountIDs(ctx context.Context) ([]RowAccount, error)
	Load(ctx context.Context, rowIndex int) (*Row, error)
	Save(ctx context.Context, row *Row) error
	Flush(ctx context.Context) error
}

// Inserter acrescenta linhas novas à tabela
type Inserter interface {
	Insert(ctx context.Context, values []string) (int, error)
}

func NewRow(index int, fields, values []string) *Row {
	row := &Row{
		Index:  index,
		fields: fields,
		values: make([]string, len(fields)),
	}
	copy(row.values, values)
	return row
}

func (r *Row) Get(field string) (string, error) {
	i, err := r.position(field)
	if err != nil {
		return "", err
	}
	return r.values[i], nil
}

// MustGet devolve vazio para campos fora do schema
func (r *Row) MustGet(field string) string {
	value, _ := r.Get(field)
	return value
}

func (r *Row) Set(field, value string) error {
	i, err := r.position(field)
	if err != nil {
		return err
	}
	r.values[i] = value
	return nil
}

func (r *Row) Fields() []string {
	return r.fields
}

// Values devolve uma cópia dos valores na ordem do schema
func (r *Row) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func (r *Row) position(field string) (int, error) {
	for i, name := range r.fields {
		if name == field {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownField, field)
}
