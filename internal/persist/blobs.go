package persist

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Blob keys. The layout mirrors what the UI needs at startup: the
// roster, the per-conversation threads, the last open conversation
// and any reports queued for submission.
const (
	KeyContacts = "contacts"
	KeyThreads  = "chats"
	KeySelected = "selected_chat"
	KeyReports  = "reports"
)

// Put stores raw bytes under key, replacing any previous value.
func (db *DB) Put(key string, value []byte) error {
	_, err := db.Exec(`
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	return err
}

// Get returns the bytes stored under key. The second return is false
// when the key is absent.
func (db *DB) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Delete removes the blob under key. Missing keys are not an error.
func (db *DB) Delete(key string) error {
	_, err := db.Exec(`DELETE FROM blobs WHERE key = ?`, key)
	return err
}

// SaveJSON marshals v and stores it under key.
func (db *DB) SaveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Put(key, data)
}

// LoadJSON unmarshals the blob under key into v. Returns false when
// the key is absent, the read fails or the stored bytes are not valid
// JSON for v; callers fall back to defaults in all of those cases.
func (db *DB) LoadJSON(key string, v any) bool {
	data, ok, err := db.Get(key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
