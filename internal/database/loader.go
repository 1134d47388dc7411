package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"rrcpermits/internal/daf420"
	"rrcpermits/internal/types"
)

// Table names. One ledger row per load; every data row carries its load's ID
// so repeated loads of successive exports can coexist.
const (
	tablePermits      = "DA_PERMITS"
	tableFields       = "DA_PERMIT_FIELDS"
	tableRestrictions = "DA_PERMIT_RESTRICTIONS"
	tableLedger       = "DA_LOAD_LEDGER"
)

// LoadSummary describes one completed load, mirroring its ledger row.
type LoadSummary struct {
	LoadID       string
	FileName     string
	SHA256       string
	ProcessedAt  time.Time
	Permits      int
	Fields       int
	Restrictions int
}

// EnsureSchema creates any of the permit tables that do not exist yet. It
// never alters an existing table.
func (d *Database) EnsureSchema() error {
	tables := []struct {
		name string
		ddl  string
	}{
		{tablePermits, createTableSQL(tablePermits, daf420.PermitColumns())},
		{tableFields, createTableSQL(tableFields, daf420.FieldColumns())},
		{tableRestrictions, createTableSQL(tableRestrictions, daf420.RestrictionColumns())},
		{tableLedger, createLedgerSQL()},
	}

	for _, t := range tables {
		exists, err := d.tableExists(t.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := d.db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Debug().Str("table", t.name).Msg("created table")
	}
	return nil
}

func (d *Database) tableExists(name string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM USER_TABLES WHERE TABLE_NAME = :1`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", name, err)
	}
	return count > 0, nil
}

// LoadRun inserts a full parse in one transaction and records it in the
// ledger. Either every row lands or none do.
func (d *Database) LoadRun(ctx context.Context, res *daf420.Result, fileName, sha256Hex string) (LoadSummary, error) {
	sum := LoadSummary{
		LoadID:       uuid.NewString(),
		FileName:     fileName,
		SHA256:       sha256Hex,
		ProcessedAt:  time.Now().UTC(),
		Permits:      len(res.Permits),
		Fields:       len(res.Fields),
		Restrictions: len(res.Restrictions),
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	if err := insertRows(ctx, tx, tablePermits, daf420.PermitColumns(), res.Permits, sum.LoadID); err != nil {
		return LoadSummary{}, err
	}
	if err := insertRows(ctx, tx, tableFields, daf420.FieldColumns(), res.Fields, sum.LoadID); err != nil {
		return LoadSummary{}, err
	}
	if err := insertRows(ctx, tx, tableRestrictions, daf420.RestrictionColumns(), res.Restrictions, sum.LoadID); err != nil {
		return LoadSummary{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO `+tableLedger+`
			(LOAD_ID, FILE_NAME, SHA256_HEX, PROCESSED_AT, PERMIT_COUNT, FIELD_COUNT, RESTRICTION_COUNT)
		VALUES (:1, :2, :3, :4, :5, :6, :7)`,
		sum.LoadID, sum.FileName, sum.SHA256, sum.ProcessedAt, sum.Permits, sum.Fields, sum.Restrictions)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("insert ledger row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return LoadSummary{}, fmt.Errorf("commit load: %w", err)
	}
	return sum, nil
}

// LatestLoadByFile returns the most recent ledger entry for a file name, or
// nil when the file has never been loaded.
func (d *Database) LatestLoadByFile(fileName string) (*LoadSummary, error) {
	query := `
		SELECT LOAD_ID, FILE_NAME, SHA256_HEX, PROCESSED_AT, PERMIT_COUNT, FIELD_COUNT, RESTRICTION_COUNT
		FROM ` + tableLedger + `
		WHERE FILE_NAME = :1
		ORDER BY PROCESSED_AT DESC
		FETCH FIRST 1 ROWS ONLY`

	var sum LoadSummary
	err := d.db.QueryRow(query, fileName).Scan(
		&sum.LoadID, &sum.FileName, &sum.SHA256, &sum.ProcessedAt,
		&sum.Permits, &sum.Fields, &sum.Restrictions)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	return &sum, nil
}

// latestLoadSQL picks the most recent load; the list queries scope themselves
// to it so a county or operator search never mixes exports.
const latestLoadSQL = "SELECT LOAD_ID FROM " + tableLedger + " ORDER BY PROCESSED_AT DESC FETCH FIRST 1 ROWS ONLY"

// PermitByStatusNumber returns the newest loaded row for a status number, or
// nil when no load ever carried it. Columns Oracle stored as NULL (it treats
// empty strings that way) stay absent from the map.
func (d *Database) PermitByStatusNumber(status string) (types.PermitRecord, error) {
	recs, err := d.selectPermits(
		"p.DA_STATUS_NUMBER = :1",
		"l.PROCESSED_AT DESC FETCH FIRST 1 ROWS ONLY",
		status)
	if err != nil {
		return nil, fmt.Errorf("query permit %s: %w", status, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// PermitByAPINumber returns the newest loaded row for an API number, or nil.
func (d *Database) PermitByAPINumber(api string) (types.PermitRecord, error) {
	recs, err := d.selectPermits(
		"p.API_NUMBER = :1",
		"l.PROCESSED_AT DESC FETCH FIRST 1 ROWS ONLY",
		api)
	if err != nil {
		return nil, fmt.Errorf("query permit api %s: %w", api, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// PermitsInCounty lists the most recent load's permits for a county code.
// Either county column may carry the code, they come from different record
// types.
func (d *Database) PermitsInCounty(code string) ([]types.PermitRecord, error) {
	recs, err := d.selectPermits(
		"l.LOAD_ID = ("+latestLoadSQL+") AND (p.DA_COUNTY_CODE_ROOT = :1 OR p.DA_PERMIT_COUNTY_CODE = :2)",
		"p.DA_STATUS_NUMBER",
		code, code)
	if err != nil {
		return nil, fmt.Errorf("query county %s: %w", code, err)
	}
	return recs, nil
}

// PermitsByOperator lists the most recent load's permits whose operator name
// contains the given text, case-insensitively.
func (d *Database) PermitsByOperator(name string) ([]types.PermitRecord, error) {
	recs, err := d.selectPermits(
		"l.LOAD_ID = ("+latestLoadSQL+") AND UPPER(p.DA_OPERATOR_NAME) LIKE '%' || :1 || '%'",
		"p.DA_STATUS_NUMBER",
		strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return nil, fmt.Errorf("query operator %q: %w", name, err)
	}
	return recs, nil
}

// selectPermits runs one SELECT over the permit table joined to the ledger
// and maps each row back to a record, leaving NULL and empty columns absent.
func (d *Database) selectPermits(where, order string, args ...any) ([]types.PermitRecord, error) {
	cols := daf420.PermitColumns()

	var b strings.Builder
	b.WriteString("SELECT ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("p." + c.Name)
	}
	b.WriteString(" FROM " + tablePermits + " p JOIN " + tableLedger + " l ON p.LOAD_ID = l.LOAD_ID")
	b.WriteString(" WHERE " + where)
	b.WriteString(" ORDER BY " + order)

	rows, err := d.db.Query(b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	var recs []types.PermitRecord
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := types.PermitRecord{}
		for i, c := range cols {
			if vals[i].Valid && vals[i].String != "" {
				rec[c.Name] = vals[i].String
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// insertRows bulk-inserts one collection with a prepared statement, stamping
// every row with the load ID.
func insertRows[R ~map[string]string](ctx context.Context, tx *sql.Tx, table string, cols []daf420.FieldSpec, rows []R, loadID string) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, cols))
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols)+1)
	for _, row := range rows {
		args[0] = loadID
		for i, c := range cols {
			args[i+1] = row[c.Name]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func insertSQL(table string, cols []daf420.FieldSpec) string {
	var names, binds strings.Builder
	names.WriteString("LOAD_ID")
	binds.WriteString(":1")
	for i, c := range cols {
		names.WriteString(", " + c.Name)
		fmt.Fprintf(&binds, ", :%d", i+2)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, names.String(), binds.String())
}

func createTableSQL(table string, cols []daf420.FieldSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
	b.WriteString("\tLOAD_ID VARCHAR2(36) NOT NULL")
	for _, c := range cols {
		// A little slack over the layout width covers normalized decimals.
		fmt.Fprintf(&b, ",\n\t%s VARCHAR2(%d)", c.Name, c.Length+4)
	}
	b.WriteString("\n)")
	return b.String()
}

func createLedgerSQL() string {
	return `CREATE TABLE ` + tableLedger + ` (
	LOAD_ID VARCHAR2(36) PRIMARY KEY,
	FILE_NAME VARCHAR2(255) NOT NULL,
	SHA256_HEX VARCHAR2(64) NOT NULL,
	PROCESSED_AT TIMESTAMP NOT NULL,
	PERMIT_COUNT NUMBER(10) NOT NULL,
	FIELD_COUNT NUMBER(10) NOT NULL,
	RESTRICTION_COUNT NUMBER(10) NOT NULL
)`
}
