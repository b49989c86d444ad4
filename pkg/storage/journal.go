// Package storage 农场日志：每天结束时记录一行到 SQLite（纯 Go 驱动，无需 CGO）
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

// Journal 农场日志数据库
type Journal struct {
	db *sql.DB
}

// DayRecord 一天的记录
type DayRecord struct {
	ID        int64
	Day       int
	Raining   bool
	Money     int
	Harvested map[string]int // 作物名 -> 当天收获数量
	CreatedAt time.Time
}

// TotalHarvested 返回当天收获总数
func (r DayRecord) TotalHarvested() int {
	n := 0
	for _, c := range r.Harvested {
		n += c
	}
	return n
}

// Open 打开（或创建）日志数据库并建表；路径以 ~ 开头时展开为用户目录
func Open(dbPath string) (*Journal, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS days (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day INTEGER NOT NULL,
			raining INTEGER NOT NULL DEFAULT 0,
			money INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS harvests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day_id INTEGER NOT NULL REFERENCES days(id) ON DELETE CASCADE,
			crop TEXT NOT NULL,
			amount INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_harvests_day ON harvests(day_id);
		CREATE INDEX IF NOT EXISTS idx_harvests_crop ON harvests(crop);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close 关闭数据库
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// RecordDay 在一个事务内写入一天的记录及其收获明细，返回记录ID
func (j *Journal) RecordDay(rec DayRecord) (int64, error) {
	tx, err := j.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	raining := 0
	if rec.Raining {
		raining = 1
	}
	res, err := tx.Exec("INSERT INTO days (day, raining, money) VALUES (?, ?, ?)", rec.Day, raining, rec.Money)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record day: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	crops := make([]string, 0, len(rec.Harvested))
	for crop := range rec.Harvested {
		crops = append(crops, crop)
	}
	sort.Strings(crops)
	for _, crop := range crops {
		amount := rec.Harvested[crop]
		if amount <= 0 {
			continue
		}
		if _, err := tx.Exec("INSERT INTO harvests (day_id, crop, amount) VALUES (?, ?, ?)", id, crop, amount); err != nil {
			return 0, fmt.Errorf("storage: cannot record harvest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit day: %w", err)
	}
	return id, nil
}

// RecentDays 返回最近 limit 天的记录，最新的在前
func (j *Journal) RecentDays(limit int) ([]DayRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := j.db.Query(
		`SELECT id, day, raining, money, created_at
		 FROM days
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query days: %w", err)
	}
	defer rows.Close()

	var records []DayRecord
	byID := make(map[int64]int)
	for rows.Next() {
		var rec DayRecord
		var raining int
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Day, &raining, &rec.Money, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Raining = raining != 0
		rec.CreatedAt = parseTime(createdAt)
		rec.Harvested = make(map[string]int)
		byID[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for id, i := range byID {
		if err := j.loadHarvests(id, records[i].Harvested); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (j *Journal) loadHarvests(dayID int64, into map[string]int) error {
	rows, err := j.db.Query("SELECT crop, amount FROM harvests WHERE day_id = ?", dayID)
	if err != nil {
		return fmt.Errorf("storage: cannot query harvests: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var crop string
		var amount int
		if err := rows.Scan(&crop, &amount); err != nil {
			return fmt.Errorf("storage: cannot scan harvest: %w", err)
		}
		into[crop] += amount
	}
	return rows.Err()
}

// HarvestTotals 返回所有天数累计的各作物收获量
func (j *Journal) HarvestTotals() (map[string]int, error) {
	rows, err := j.db.Query("SELECT crop, SUM(amount) FROM harvests GROUP BY crop")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query harvest totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var crop string
		var amount int
		if err := rows.Scan(&crop, &amount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan totals row: %w", err)
		}
		totals[crop] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return totals, nil
}

// RainyDays 返回记录中下雨的天数和总天数
func (j *Journal) RainyDays() (rainy, total int, err error) {
	err = j.db.QueryRow("SELECT COALESCE(SUM(raining), 0), COUNT(*) FROM days").Scan(&rainy, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot count days: %w", err)
	}
	return rainy, total, nil
}

// Clear 删除所有记录
func (j *Journal) Clear() error {
	if _, err := j.db.Exec("DELETE FROM harvests; DELETE FROM days;"); err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

// parseTime SQLite 驱动可能返回 time.Time 或字符串
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
