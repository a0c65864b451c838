package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/database"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/rowstore"
)

const rowIndexColumn = "row_index"

// Colunas da tabela na ordem de domain.WorkRecordFields
var workRowColumns = map[string]string{
	domain.FieldID:             "id",
	domain.FieldAdsMetadata:    "ads_metadata",
	domain.FieldVideoMetadata:  "video_metadata",
	domain.FieldStatus:         "status",
	domain.FieldGeneratedVideo: "generated_video",
}

type WorkRowRepository interface {
	rowstore.Store
	rowstore.Inserter
}

type workRowRepository struct {
	conn        database.Queryer
	table       string
	placeholder squirrel.PlaceholderFormat
}

// NewWorkRowRepository devolve o rowstore.Store sobre a tabela SQL.
// driver define o formato de placeholder: $n para postgres, ? para sqlite3.
func NewWorkRowRepository(conn database.Queryer, driver, table string) WorkRowRepository {
	placeholder := squirrel.PlaceholderFormat(squirrel.Dollar)
	if driver == "sqlite3" {
		placeholder = squirrel.Question
	}
	if table == "" {
		table = "work_rows"
	}

	return &workRowRepository{
		conn:        conn,
		table:       table,
		placeholder: placeholder,
	}
}

func (r *workRowRepository) AccountIDs(ctx context.Context) ([]rowstore.RowAccount, error) {
	query, args, err := squirrel.
		Select(rowIndexColumn, workRowColumns[domain.FieldAdsMetadata]).
		From(r.table).
		OrderBy(rowIndexColumn + " ASC").
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "work_rows: build account scan")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "work_rows: scan account column")
	}
	defer rows.Close()

	accounts := make([]rowstore.RowAccount, 0)
	for rows.Next() {
		var (
			index int
			cell  sql.NullString
		)
		if err := rows.Scan(&index, &cell); err != nil {
			return nil, errors.Wrap(err, "work_rows: read account column")
		}
		accounts = append(accounts, rowstore.RowAccount{
			Index:     index,
			AccountID: rowstore.AccountIDFromAdsMetadata(cell.String),
		})
	}

	return accounts, errors.Wrap(rows.Err(), "work_rows: iterate account column")
}

func (r *workRowRepository) Load(ctx context.Context, rowIndex int) (*rowstore.Row, error) {
	query, args, err := squirrel.
		Select(r.columns()...).
		From(r.table).
		Where(squirrel.Eq{rowIndexColumn: rowIndex}).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "work_rows: build load")
	}

	cells := make([]sql.NullString, len(domain.WorkRecordFields))
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(rowstore.ErrRowNotFound, "work_rows: row %d", rowIndex)
		}
		return nil, errors.Wrapf(err, "work_rows: load row %d", rowIndex)
	}

	values := make([]string, len(cells))
	for i, cell := range cells {
		values[i] = cell.String
	}

	return rowstore.NewRow(rowIndex, domain.WorkRecordFields, values), nil
}

// Save regrava todas as colunas da linha em um único UPDATE
func (r *workRowRepository) Save(ctx context.Context, row *rowstore.Row) error {
	builder := squirrel.Update(r.table).
		Where(squirrel.Eq{rowIndexColumn: row.Index}).
		PlaceholderFormat(r.placeholder)

	values := row.Values()
	for i, field := range row.Fields() {
		column, ok := workRowColumns[field]
		if !ok {
			return errors.Wrapf(rowstore.ErrUnknownField, "work_rows: field %q", field)
		}
		builder = builder.Set(column, values[i])
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "work_rows: build save")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "work_rows: save row %d", row.Index)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "work_rows: save row %d", row.Index)
	}
	if affected == 0 {
		return errors.Wrapf(rowstore.ErrRowNotFound, "work_rows: row %d", row.Index)
	}

	return nil
}

// Flush não faz nada: cada Save já é um UPDATE autocommit
func (r *workRowRepository) Flush(_ context.Context) error {
	return nil
}

// Insert acrescenta uma linha na próxima posição livre
func (r *workRowRepository) Insert(ctx context.Context, values []string) (int, error) {
	var next sql.NullInt64
	maxQuery, _, err := squirrel.
		Select("MAX(" + rowIndexColumn + ")").
		From(r.table).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "work_rows: build max index")
	}
	if err := r.conn.QueryRowContext(ctx, maxQuery).Scan(&next); err != nil {
		return 0, errors.Wrap(err, "work_rows: read max index")
	}

	index := 0
	if next.Valid {
		index = int(next.Int64) + 1
	}

	columns := append([]string{rowIndexColumn}, r.columns()...)
	args := make([]any, 0, len(columns))
	args = append(args, index)
	for i := range domain.WorkRecordFields {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		args = append(args, value)
	}

	query, queryArgs, err := squirrel.
		Insert(r.table).
		Columns(columns...).
		Values(args...).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "work_rows: build insert")
	}

	if _, err := r.conn.ExecContext(ctx, query, queryArgs...); err != nil {
		return 0, errors.Wrap(err, "work_rows: insert row")
	}

	return index, nil
}

func (r *workRowRepository) columns() []string {
	columns := make([]string, 0, len(domain.WorkRecordFields))
	for _, field := range domain.WorkRecordFields {
		columns = append(columns, workRowColumns[field])
	}
	return columns
}
