package tracing

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
)

// A CycleRow is one recorded collection cycle read back from a trace
// database.
type CycleRow struct {
	GCID         uint64
	Cause        string
	StartTime    float64
	EndTime      float64
	StoppedNs    int64
	ConcurrentNs int64
	PreUsed      uint64
	PostUsed     uint64
	Collections  uint64
}

// A PauseRow is one recorded pause.
type PauseRow struct {
	GCID      uint64
	Name      string
	StartTime float64
	EndTime   float64
}

// A PhaseTotalRow aggregates the recorded occurrences of one phase.
type PhaseTotalRow struct {
	Name         string
	Count        int
	TotalSeconds float64
}

// SQLiteTraceReader reads trace events back from a SQLite trace database.
type SQLiteTraceReader struct {
	*sql.DB

	filename string
}

// NewSQLiteTraceReader creates a new SQLiteTraceReader.
func NewSQLiteTraceReader(filename string) *SQLiteTraceReader {
	return &SQLiteTraceReader{filename: filename}
}

// Init establishes a connection to the database.
func (r *SQLiteTraceReader) Init() error {
	db, err := sql.Open("sqlite3", r.filename)
	if err != nil {
		return err
	}

	r.DB = db

	return nil
}

// ListCycles returns the recorded cycles in start order.
func (r *SQLiteTraceReader) ListCycles() ([]CycleRow, error) {
	rows, err := r.Query(`
		SELECT GCID, Cause, StartTime, EndTime,
			StoppedNs, ConcurrentNs,
			PreUsedBytes, PostUsedBytes, Collections
		FROM gc_cycles
		ORDER BY StartTime
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cycles := []CycleRow{}
	for rows.Next() {
		c := CycleRow{}
		err := rows.Scan(
			&c.GCID,
			&c.Cause,
			&c.StartTime,
			&c.EndTime,
			&c.StoppedNs,
			&c.ConcurrentNs,
			&c.PreUsed,
			&c.PostUsed,
			&c.Collections,
		)
		if err != nil {
			return nil, err
		}

		cycles = append(cycles, c)
	}

	return cycles, rows.Err()
}

// ListPauses returns the recorded pauses, optionally restricted to one gc id
// (gcID == 0 means all).
func (r *SQLiteTraceReader) ListPauses(gcID uint64) ([]PauseRow, error) {
	sqlStr := `
		SELECT GCID, Name, StartTime, EndTime
		FROM gc_pauses
	`

	if gcID != 0 {
		sqlStr += fmt.Sprintf("WHERE GCID = %d\n", gcID)
	}

	sqlStr += "ORDER BY StartTime"

	rows, err := r.Query(sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pauses := []PauseRow{}
	for rows.Next() {
		p := PauseRow{}
		err := rows.Scan(&p.GCID, &p.Name, &p.StartTime, &p.EndTime)
		if err != nil {
			return nil, err
		}

		pauses = append(pauses, p)
	}

	return pauses, rows.Err()
}

// PhaseTotals returns per-phase counts and total seconds across the whole
// trace.
func (r *SQLiteTraceReader) PhaseTotals() ([]PhaseTotalRow, error) {
	rows, err := r.Query(`
		SELECT Name, COUNT(*), SUM(EndTime - StartTime)
		FROM gc_phases
		GROUP BY Phase, Name
		ORDER BY Phase
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []PhaseTotalRow{}
	for rows.Next() {
		t := PhaseTotalRow{}
		err := rows.Scan(&t.Name, &t.Count, &t.TotalSeconds)
		if err != nil {
			return nil, err
		}

		totals = append(totals, t)
	}

	return totals, rows.Err()
}
