package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"episodemap/galaxy/internal/graph"
)

const episodeColumns = `key, ordinal, guest, categories, functions, audiences,
		       takeaways, notes, transcript_ref, imported_at`

// scanEpisode scans a row into an Episode. The row must have all 10 columns in standard order.
func scanEpisode(scanner interface{ Scan(dest ...any) error }) (Episode, error) {
	var e Episode
	var cats, funcs, auds, takeaways string
	err := scanner.Scan(
		&e.Key, &e.Ordinal, &e.Guest, &cats, &funcs, &auds,
		&takeaways, &e.Notes, &e.TranscriptRef, &e.ImportedAt,
	)
	if err != nil {
		return e, err
	}
	e.Categories = decodeList(cats)
	e.Functions = decodeList(funcs)
	e.Audiences = decodeList(auds)
	e.Takeaways = decodeList(takeaways)
	return e, nil
}

func (d *DB) queryEpisodes(query string, args ...any) ([]Episode, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

// AllEpisodes returns every episode in import order
func (d *DB) AllEpisodes() ([]Episode, error) {
	return d.queryEpisodes(`SELECT ` + episodeColumns + ` FROM episodes ORDER BY ordinal`)
}

// Items returns every episode as a graph item, in import order
func (d *DB) Items() ([]*graph.Item, error) {
	episodes, err := d.AllEpisodes()
	if err != nil {
		return nil, fmt.Errorf("loading episodes: %w", err)
	}
	items := make([]*graph.Item, len(episodes))
	for i := range episodes {
		items[i] = episodes[i].Item()
	}
	return items, nil
}

// GetEpisode returns a single episode by key, or ErrNotFound
func (d *DB) GetEpisode(key string) (*Episode, error) {
	row := d.conn.QueryRow(`SELECT `+episodeColumns+` FROM episodes WHERE key = ?`, key)
	e, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SearchByKeyPrefix finds episodes whose key starts with the given prefix.
func (d *DB) SearchByKeyPrefix(prefix string, limit int) ([]Episode, error) {
	return d.queryEpisodes(`SELECT `+episodeColumns+` FROM episodes
		WHERE key LIKE ? ESCAPE '\' ORDER BY ordinal LIMIT ?`, escapeLike(prefix)+"%", limit)
}

// CountEpisodes returns the number of stored episodes
func (d *DB) CountEpisodes() (int, error) {
	var count int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM episodes").Scan(&count)
	return count, err
}

// ReplaceEpisodes swaps the whole store for items in one transaction.
// Input order becomes the ordinal, which is the node order of the built graph.
func (d *DB) ReplaceEpisodes(items []*graph.Item) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM episodes"); err != nil {
		return fmt.Errorf("clearing episodes: %w", err)
	}
	if d.fts {
		if _, err := tx.Exec("DELETE FROM episodes_fts"); err != nil {
			return fmt.Errorf("clearing fts index: %w", err)
		}
	}

	now := time.Now().UnixMilli()
	for i, it := range items {
		e := EpisodeFromItem(it, i)
		takeaways := encodeList(e.Takeaways)
		_, err := tx.Exec(`INSERT INTO episodes (`+episodeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Key, e.Ordinal, e.Guest, encodeList(e.Categories), encodeList(e.Functions),
			encodeList(e.Audiences), takeaways, e.Notes, e.TranscriptRef, now)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", e.Key, err)
		}
		if d.fts {
			_, err := tx.Exec(`INSERT INTO episodes_fts (key, guest, notes, takeaways) VALUES (?, ?, ?, ?)`,
				e.Key, e.Guest, e.Notes, takeaways)
			if err != nil {
				return fmt.Errorf("indexing %s: %w", e.Key, err)
			}
		}
	}

	return tx.Commit()
}
