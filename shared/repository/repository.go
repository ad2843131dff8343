package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	errRequiredFilter = errors.New("required filter")
)

type column struct {
	name  string
	table string
	alias string
}

// qualified is the column as written in a select list.
func (c column) qualified() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

const lockForUpdate = "FOR UPDATE"

// Repository is the generic sqlx store behind every ledger table. T is the
// row struct; its db tags name the columns, a table tag moves a column to a
// joined table and a column tag selects it under a different name. A
// GetJoinQuery method on T supplies the join.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

// fail records err on the scope and the log before wrapping it with the action
// that failed.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// namedGet runs a single-row named query into dest.
func (repo *Repository[T]) namedGet(ctx context.Context, scope otel.Scope, prep preparer, query, action string, dest any, args map[string]any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	if err := prepare.GetContext(ctx, dest, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.InsertColumns))
	for idx, col := range repo.InsertColumns {
		placeholders[idx] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	return repo.insert(ctx, repo.db.Write, model) //nolint:wrapcheck
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.scope(ctx, "InsertTx")
	defer scope.End()

	return repo.insert(ctx, sqltx, model) //nolint:wrapcheck
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	exist := false
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s %s)", repo.table, repo.join, where)

	err := repo.namedGet(ctx, scope, repo.db.Read, query, "check exist data", &exist, args)

	return exist, err
}

// get returns the zero T when no row matches; callers check the primary key.
func (repo *Repository[T]) get(ctx context.Context, prep preparer, filter dto.FilterGroup, lock string, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where, lock)

	var model T

	err := repo.namedGet(ctx, scope, prep, query, "get data", &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	return repo.get(ctx, repo.db.Read, filter, constant.Empty, columns...)
}

// GetForUpdateTx reads one row and holds its lock until the transaction ends.
// Joined entities must not use it.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.scope(ctx, "GetForUpdateTx")
	defer scope.End()

	return repo.get(ctx, sqltx, filter, lockForUpdate)
}

// paginate renders ORDER BY and LIMIT/OFFSET for params. The primary key
// breaks ties so pages never overlap.
func (repo *Repository[T]) paginate(params dto.QueryParams, args map[string]any) string {
	clauses := []string{}

	if sortColumn, ok := repo.sortColumn(params.SortBy); ok && params.SortDir != "" {
		clauses = append(clauses, fmt.Sprintf("ORDER BY %s %s, %s.%s", sortColumn, params.SortDir, repo.table, repo.primaryColumn))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		clauses = append(clauses, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = params.Offset()
			clauses = append(clauses, "OFFSET :offset")
		}
	}

	return strings.Join(clauses, " ")
}

func (repo *Repository[T]) getAll(ctx context.Context, prep preparer, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "getAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where, repo.paginate(params, args))

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	prepare, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	return repo.getAll(ctx, repo.db.Read, params, filter, columns...)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAllTx")
	defer scope.End()

	return repo.getAll(ctx, sqltx, dto.QueryParams{}, filter)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	var count int

	err := repo.namedGet(ctx, scope, repo.db.Read, query, "count data", &count, args)

	return count, err
}

// Sum adds up a numeric column or expression over the filtered rows. Empty sets sum to zero.
func (repo *Repository[T]) Sum(ctx context.Context, expression string, filter dto.FilterGroup) (decimal.Decimal, error) {
	ctx, scope := repo.scope(ctx, "Sum")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COALESCE(SUM(%s), 0) FROM %s %s %s", expression, repo.table, repo.join, where)

	var total decimal.Decimal

	err := repo.namedGet(ctx, scope, repo.db.Read, query, "sum data", &total, args)

	return total, err
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	return repo.delete(ctx, repo.db.Write, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "DeleteTx")
	defer scope.End()

	return repo.delete(ctx, sqltx, filter) //nolint:wrapcheck
}

// update writes the columns in mod. A filter argument sharing a column name
// with mod is overwritten, so filters on an updated column need an ArgName.
func (repo *Repository[T]) update(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, mod)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	return repo.update(ctx, repo.db.Write, mod, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "UpdateTx")
	defer scope.End()

	return repo.update(ctx, sqltx, mod, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) getSelectQuery(ctx context.Context, columnsParam ...string) string {
	_, scope := repo.scope(ctx, "getSelectQuery")
	defer scope.End()

	columns := []string{}

	for _, col := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, col.name) {
			continue
		}

		columns = append(columns, col.qualified())
	}

	return strings.Join(columns, ", ")
}

// sortColumn resolves a caller-supplied sort key against the selectable
// columns and returns it table qualified.
func (repo *Repository[T]) sortColumn(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	idx := slices.IndexFunc(repo.columns, func(col column) bool {
		return col.name == name || col.alias == name
	})
	if idx < 0 {
		return "", false
	}

	col := repo.columns[idx]
	if col.table == "" {
		return col.name, true
	}

	return col.table + "." + col.name, true
}

func (repo *Repository[T]) hasColumn(name string) bool {
	_, ok := repo.sortColumn(name)

	return ok
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.scope(ctx, "BuildWhereClause")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

// getColumns walks the db tags of t, descending into embedded structs such as
// model.Metadata. Only columns owned by table are insertable.
func getColumns(table string, t reflect.Type) (columns []column, insertColumns []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := getColumns(table, field.Type)
			columns = append(columns, nested...)
			insertColumns = append(insertColumns, nestedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if colTag := field.Tag.Get("column"); colTag != "" {
			columns = append(columns, column{name: colTag, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
