package store

import "fmt"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Snapshot returns the settings as one immutable value. Missing keys
// fall back to defaults so a partially seeded table never breaks a render.
func (s *Store) Snapshot() Settings {
	snap := Settings{
		CurrencyCode:   "USD",
		ColorScheme:    "red",
		CustomColorHex: "#B71C1C",
	}
	if v, err := s.GetSetting("default_currency"); err == nil && v != "" {
		snap.CurrencyCode = v
	}
	if v, err := s.GetSetting("calendar_color_scheme"); err == nil && v != "" {
		snap.ColorScheme = v
	}
	if v, err := s.GetSetting("custom_calendar_color"); err == nil && v != "" {
		snap.CustomColorHex = v
	}
	if v, err := s.GetSetting("show_week_numbers"); err == nil {
		snap.ShowWeekNumbers = v == "1"
	}
	return snap
}
