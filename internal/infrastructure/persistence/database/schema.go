package database

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var tableDefinitions = []struct {
	name string
	ddl  string
}{
	{"news", `CREATE TABLE IF NOT EXISTS news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		title TEXT NOT NULL,
		excerpt TEXT NOT NULL,
		href TEXT
	)`},
	{"events", `CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		place TEXT NOT NULL,
		description TEXT NOT NULL
	)`},
	{"groups", `CREATE TABLE IF NOT EXISTS groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		lead TEXT NOT NULL,
		when_text TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT
	)`},
	{"recordings", `CREATE TABLE IF NOT EXISTS recordings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		href TEXT NOT NULL
	)`},
	{"faq", `CREATE TABLE IF NOT EXISTS faq (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`},
	{"contact_info", `CREATE TABLE IF NOT EXISTS contact_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL
	)`},
	{"galleries", `CREATE TABLE IF NOT EXISTS galleries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		image_url TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`},
	{"admin_settings", `CREATE TABLE IF NOT EXISTS admin_settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL
	)`},
}

// CreateSchema creates all tables if they do not exist
func (db *DB) CreateSchema() error {
	for _, table := range tableDefinitions {
		if _, err := db.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	if db.logger != nil {
		db.logger.Database().Info("Database schema verified", "tables", len(tableDefinitions))
	}
	return nil
}

// SeedIfEmpty populates initial content on a fresh database. The news
// table acts as the sentinel: if it holds any rows, seeding is skipped.
// The admin password hash is seeded independently so a wiped content
// database never resets credentials.
func (db *DB) SeedIfEmpty(defaultAdminPassword string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM news`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check seed sentinel: %w", err)
	}

	if count == 0 {
		if err := db.seedContent(); err != nil {
			return err
		}
		if db.logger != nil {
			db.logger.Database().Info("Seeded initial content")
		}
	}

	return db.seedAdminPassword(defaultAdminPassword)
}

func (db *DB) seedContent() error {
	type stmt struct {
		query string
		args  []any
	}

	seeds := []stmt{
		{`INSERT INTO news (date, title, excerpt, href) VALUES (?, ?, ?, ?)`,
			[]any{"2026-02-09", "Nabożeństwo niedzielne — zapraszamy", "Spotkajmy się w niedzielę na wspólnej modlitwie i rozmowie. Szczegóły w ogłoszeniach.", nil}},
		{`INSERT INTO news (date, title, excerpt, href) VALUES (?, ?, ?, ?)`,
			[]any{"2026-02-02", "Plan spotkań grup w lutym", "Zebraliśmy terminy spotkań dla grup parafialnych. Sprawdź kalendarz i dołącz.", nil}},
		{`INSERT INTO news (date, title, excerpt, href) VALUES (?, ?, ?, ?)`,
			[]any{"2026-01-25", "Nowe nagrania na YouTube", "Dodaliśmy kolejne kazania i materiały. Jeśli nie możesz być na miejscu — odsłuchaj online.", "https://www.youtube.com/channel/UCYwTmxRhm2hZDWkeEZngc4g"}},

		{`INSERT INTO events (date, time, type, title, place, description) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"2026-02-16", "10:00", "Nabożeństwo", "Nabożeństwo", "Kościół — Wisła Jawornik", "Wspólne nabożeństwo. Po nabożeństwie kawa i rozmowy."}},
		{`INSERT INTO events (date, time, type, title, place, description) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"2026-02-19", "18:00", "Spotkanie", "Spotkanie biblijne", "Sala parafialna", "Czytanie i rozmowa. Możesz dołączyć w dowolnym momencie."}},
		{`INSERT INTO events (date, time, type, title, place, description) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"2026-02-23", "17:30", "Wydarzenie", "Spotkanie informacyjne", "Dom parafialny", "Aktualności organizacyjne i plany na najbliższy miesiąc."}},

		{`INSERT INTO groups (name, lead, when_text, description) VALUES (?, ?, ?, ?)`,
			[]any{"Chór", "Prowadzący: do ustalenia", "Środy 18:30", "Wspólny śpiew, próby i oprawa muzyczna nabożeństw."}},
		{`INSERT INTO groups (name, lead, when_text, description) VALUES (?, ?, ?, ?)`,
			[]any{"Młodzież", "Prowadzący: do ustalenia", "Piątki 19:00", "Spotkania, rozmowy i inicjatywy młodzieżowe."}},
		{`INSERT INTO groups (name, lead, when_text, description) VALUES (?, ?, ?, ?)`,
			[]any{"Kobiety", "Prowadząca: do ustalenia", "Co 2 tygodnie", "Wzajemne wsparcie, rozmowy i wspólne działania."}},

		{`INSERT INTO recordings (title, date, href) VALUES (?, ?, ?)`,
			[]any{"Kazanie — Niedziela", "2026-02-09", "https://www.youtube.com/channel/UCYwTmxRhm2hZDWkeEZngc4g"}},
		{`INSERT INTO recordings (title, date, href) VALUES (?, ?, ?)`,
			[]any{"Rozważanie tygodnia", "2026-02-02", "https://www.youtube.com/channel/UCYwTmxRhm2hZDWkeEZngc4g"}},
		{`INSERT INTO recordings (title, date, href) VALUES (?, ?, ?)`,
			[]any{"Nabożeństwo — zapis", "2026-01-25", "https://www.youtube.com/channel/UCYwTmxRhm2hZDWkeEZngc4g"}},

		{`INSERT INTO faq (question, answer, sort_order) VALUES (?, ?, ?)`,
			[]any{"Gdzie znajduje się parafia?", "Parafia znajduje się w Wiśle Jaworniku. Dokładny adres i mapa są w sekcji Kontakt.", 0}},
		{`INSERT INTO faq (question, answer, sort_order) VALUES (?, ?, ?)`,
			[]any{"Czy mogę dołączyć do grupy w trakcie?", "Tak. W większości przypadków możesz dołączyć w dowolnym momencie — skontaktuj się z prowadzącymi.", 1}},
		{`INSERT INTO faq (question, answer, sort_order) VALUES (?, ?, ?)`,
			[]any{"Gdzie znajdę nagrania?", "Nagrania publikujemy na YouTube. Link znajduje się w sekcji Nagrania.", 2}},

		{`INSERT INTO contact_info (key, value) VALUES (?, ?)`, []any{"address", "Wisła Jawornik (uzupełnij adres)"}},
		{`INSERT INTO contact_info (key, value) VALUES (?, ?)`, []any{"phone", "(uzupełnij numer)"}},
		{`INSERT INTO contact_info (key, value) VALUES (?, ?)`, []any{"email", "(uzupełnij e-mail)"}},
		{`INSERT INTO contact_info (key, value) VALUES (?, ?)`, []any{"hours", "(uzupełnij godziny)"}},
	}

	for _, s := range seeds {
		if _, err := db.Exec(s.query, s.args...); err != nil {
			return fmt.Errorf("failed to seed content: %w", err)
		}
	}
	return nil
}

func (db *DB) seedAdminPassword(defaultPassword string) error {
	var existing string
	err := db.QueryRow(`SELECT value FROM admin_settings WHERE key = ?`, "admin_password_hash").Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read admin password setting: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	_, err = db.Exec(`INSERT INTO admin_settings (key, value) VALUES (?, ?)`, "admin_password_hash", string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed admin password: %w", err)
	}
	return nil
}
