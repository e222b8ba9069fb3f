package sites

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"towerwitch/geo"
)

const schema = `CREATE TABLE IF NOT EXISTS sites (
	rfss TEXT,
	site_dec TEXT,
	site_hex TEXT,
	nac TEXT,
	description TEXT,
	county TEXT,
	lat REAL,
	lon REAL,
	range_miles REAL,
	frequencies TEXT,
	control_channels TEXT
);`

// Store serves nearest-site queries from the compiled site database.
type Store struct {
	db *sql.DB
}

// Open compiles the CSV into a sqlite database when the database is missing
// or older than the CSV, then opens it. The compile writes to a temp file
// and renames into place so a crash never leaves a half-built database.
func Open(csvPath, dbPath string) (*Store, error) {
	rebuild, err := needsRebuild(csvPath, dbPath)
	if err != nil {
		return nil, err
	}
	if rebuild {
		if err := buildDatabase(csvPath, dbPath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=query_only(ON)")
	if err != nil {
		return nil, fmt.Errorf("sites: open db: %w", err)
	}
	return &Store{db: db}, nil
}

func needsRebuild(csvPath, dbPath string) (bool, error) {
	csvInfo, err := os.Stat(csvPath)
	if err != nil {
		return false, fmt.Errorf("sites: stat csv: %w", err)
	}
	dbInfo, err := os.Stat(dbPath)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("sites: stat db: %w", err)
	}
	return csvInfo.ModTime().After(dbInfo.ModTime()), nil
}

func buildDatabase(csvPath, dbPath string) error {
	list, err := ParseCSVFile(csvPath)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("sites: %s produced no usable sites", csvPath)
	}

	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sites: create db directory: %w", err)
		}
	}
	tmpFile, err := os.CreateTemp(dir, "armer-*.dbtmp")
	if err != nil {
		return fmt.Errorf("sites: create temp db: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	db, err := sql.Open("sqlite", tmpPath+"?_pragma=journal_mode(OFF)&_pragma=synchronous(OFF)")
	if err != nil {
		return fmt.Errorf("sites: open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sites: create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("sites: begin tx: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO sites VALUES (?,?,?,?,?,?,?,?,?,?,?);")
	if err != nil {
		return fmt.Errorf("sites: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range list {
		_, err := stmt.Exec(s.RFSS, s.SiteDec, s.SiteHex, s.NAC, s.Description,
			s.County, s.Lat, s.Lon, s.RangeMiles,
			strings.Join(s.Frequencies, ","), strings.Join(s.ControlChannels, ","))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("sites: insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sites: commit: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("sites: close sqlite: %w", err)
	}

	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("sites: remove old db: %w", err)
	}
	if err := os.Rename(tmpPath, dbPath); err != nil {
		return fmt.Errorf("sites: replace db: %w", err)
	}
	return nil
}

// Closest returns up to n sites ranked by distance from the position. The
// distance math happens in Go; the table is small enough that a full scan
// beats teaching sqlite trigonometry.
func (s *Store) Closest(lat, lon float64, n int) ([]Ranked, error) {
	rows, err := s.db.Query("SELECT rfss, site_dec, site_hex, nac, description, county, lat, lon, range_miles, frequencies, control_channels FROM sites;")
	if err != nil {
		return nil, fmt.Errorf("sites: query: %w", err)
	}
	defer rows.Close()

	var ranked []Ranked
	for rows.Next() {
		var site Site
		var freqs, controls string
		if err := rows.Scan(&site.RFSS, &site.SiteDec, &site.SiteHex, &site.NAC,
			&site.Description, &site.County, &site.Lat, &site.Lon,
			&site.RangeMiles, &freqs, &controls); err != nil {
			return nil, fmt.Errorf("sites: scan: %w", err)
		}
		if freqs != "" {
			site.Frequencies = strings.Split(freqs, ",")
		}
		if controls != "" {
			site.ControlChannels = strings.Split(controls, ",")
		}
		ranked = append(ranked, Ranked{
			Site:           site,
			DistanceMiles:  geo.DistanceMiles(lat, lon, site.Lat, site.Lon),
			BearingDegrees: geo.BearingDegrees(lat, lon, site.Lat, site.Lon),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sites: iterate: %w", err)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Count reports how many usable sites the database holds.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sites;").Scan(&n); err != nil {
		return 0, fmt.Errorf("sites: count: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
