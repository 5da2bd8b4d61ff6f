package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if path == ":memory:" {
		// an in-memory sqlite database exists per connection
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Init applies the schema and seeds the singleton settings row.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	defaults := DefaultSettings()
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO settings
    (id, background_image, font_size, scroll_speed, google_sheet_id, donor_website,
     font_color, scroll_direction, scroll_position, scroll_width, scroll_height)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, defaults.BackgroundImage, defaults.FontSize, defaults.ScrollSpeed,
		defaults.GoogleSheetID, defaults.DonorWebsite, defaults.FontColor,
		defaults.ScrollDirection, defaults.ScrollPosition, defaults.ScrollWidth,
		defaults.ScrollHeight)
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

func clampLimit(limit int, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

type Donor struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Settings struct {
	BackgroundImage string `json:"background_image"`
	FontSize        int    `json:"font_size"`
	ScrollSpeed     int    `json:"scroll_speed"`
	GoogleSheetID   string `json:"google_sheet_id"`
	DonorWebsite    string `json:"donor_website"`
	FontColor       string `json:"font_color"`
	ScrollDirection string `json:"scroll_direction"`
	ScrollPosition  string `json:"scroll_position"`
	ScrollWidth     int    `json:"scroll_width"`
	ScrollHeight    int    `json:"scroll_height"`
}

func DefaultSettings() Settings {
	return Settings{
		BackgroundImage: "default.jpg",
		FontSize:        24,
		ScrollSpeed:     50,
		FontColor:       "#FFFFFF",
		ScrollDirection: "up",
		ScrollPosition:  "center",
		ScrollWidth:     300,
		ScrollHeight:    500,
	}
}

// ReplaceDonors swaps the full donor set in one transaction: readers never
// observe the window between the delete and the reinsert, and a failed insert
// rolls everything back to the prior set.
func (s *Store) ReplaceDonors(ctx context.Context, donors []Donor) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM donors`); err != nil {
		return 0, fmt.Errorf("failed to clear donors: %w", err)
	}

	inserted := 0
	for _, d := range donors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO donors (name, amount) VALUES (?, ?)`,
			d.Name, d.Amount,
		); err != nil {
			return 0, fmt.Errorf("failed to insert donor %q: %w", d.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit replace: %w", err)
	}
	return inserted, nil
}

func (s *Store) ListDonors(ctx context.Context, limit, offset int) ([]Donor, error) {
	limit = clampLimit(limit, 10, 200)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, amount
FROM donors
ORDER BY id
LIMIT ? OFFSET ?
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []Donor
	for rows.Next() {
		var d Donor
		if err := rows.Scan(&d.ID, &d.Name, &d.Amount); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, rows.Err()
}

func (s *Store) CountDonors(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM donors`).Scan(&count)
	return count, err
}

func (s *Store) AddDonor(ctx context.Context, name string, amount float64) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO donors (name, amount) VALUES (?, ?)`, name, amount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) DeleteDonor(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM donors WHERE id = ?`, id)
	return err
}

func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	var (
		st Settings

		background, sheet, website     sql.NullString
		color, direction, position     sql.NullString
		fontSize, speed, width, height sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT background_image, font_size, scroll_speed, google_sheet_id, donor_website,
       font_color, scroll_direction, scroll_position, scroll_width, scroll_height
FROM settings WHERE id = 1
`).Scan(&background, &fontSize, &speed, &sheet, &website,
		&color, &direction, &position, &width, &height)
	if err == sql.ErrNoRows {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}

	defaults := DefaultSettings()
	st.BackgroundImage = orString(background, defaults.BackgroundImage)
	st.FontSize = orInt(fontSize, defaults.FontSize)
	st.ScrollSpeed = orInt(speed, defaults.ScrollSpeed)
	st.GoogleSheetID = orString(sheet, "")
	st.DonorWebsite = orString(website, "")
	st.FontColor = orString(color, defaults.FontColor)
	st.ScrollDirection = orString(direction, defaults.ScrollDirection)
	st.ScrollPosition = orString(position, defaults.ScrollPosition)
	st.ScrollWidth = orInt(width, defaults.ScrollWidth)
	st.ScrollHeight = orInt(height, defaults.ScrollHeight)
	return st, nil
}

func (s *Store) UpdateSettings(ctx context.Context, st Settings) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE settings
SET background_image = ?,
    font_size = ?,
    scroll_speed = ?,
    google_sheet_id = ?,
    donor_website = ?,
    font_color = ?,
    scroll_direction = ?,
    scroll_position = ?,
    scroll_width = ?,
    scroll_height = ?
WHERE id = 1
`, st.BackgroundImage, st.FontSize, st.ScrollSpeed, st.GoogleSheetID,
		st.DonorWebsite, st.FontColor, st.ScrollDirection, st.ScrollPosition,
		st.ScrollWidth, st.ScrollHeight)
	return err
}

// DonorSourceURL is the one settings field the sync pipeline consumes.
func (s *Store) DonorSourceURL(ctx context.Context) (string, error) {
	var website sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT donor_website FROM settings WHERE id = 1`).Scan(&website)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return website.String, nil
}

func orString(v sql.NullString, fallback string) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return fallback
}

func orInt(v sql.NullInt64, fallback int) int {
	if v.Valid && v.Int64 != 0 {
		return int(v.Int64)
	}
	return fallback
}
