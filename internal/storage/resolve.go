package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// SaveResolveStats records the resolver statistics of a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResolveStats(gameID string, score int, st core.ResolveStats) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO resolve_stats
		 (game_id, score, swaps, reverts, cycles, cascades, max_chain,
		  bombs_spawned, bombs_detonated, tiles_destroyed, fallbacks, misplaced, reshuffles)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, score,
		st.Swaps, st.Reverts, st.Cycles, st.Cascades, st.MaxChain,
		st.BombsSpawned, st.BombsDetonated, st.TilesDestroyed, st.Fallbacks, st.Misplaced, st.Reshuffles,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save resolve stats: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResolveStats returns the latest records for a game, newest first.
func (s *Store) RecentResolveStats(gameID string, limit int) ([]ResolveRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, swaps, reverts, cycles, cascades, max_chain,
		        bombs_spawned, bombs_detonated, tiles_destroyed, fallbacks, misplaced, reshuffles, created_at
		 FROM resolve_stats
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query resolve stats: %w", err)
	}
	defer rows.Close()

	var records []ResolveRecord
	for rows.Next() {
		var r ResolveRecord
		var createdAt any
		st := &r.Stats
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score,
			&st.Swaps, &st.Reverts, &st.Cycles, &st.Cascades, &st.MaxChain,
			&st.BombsSpawned, &st.BombsDetonated, &st.TilesDestroyed, &st.Fallbacks, &st.Misplaced, &st.Reshuffles,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ResolveTotals sums the resolver statistics of every recorded game.
// A game without records yields zero totals.
func (s *Store) ResolveTotals(gameID string) (*ResolveTotals, error) {
	t := &ResolveTotals{GameID: gameID}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(swaps), 0), COALESCE(SUM(reverts), 0),
		        COALESCE(SUM(cycles), 0), COALESCE(SUM(cascades), 0),
		        COALESCE(MAX(max_chain), 0),
		        COALESCE(SUM(bombs_spawned), 0), COALESCE(SUM(bombs_detonated), 0),
		        COALESCE(SUM(tiles_destroyed), 0), COALESCE(SUM(fallbacks), 0),
		        COALESCE(SUM(misplaced), 0), COALESCE(SUM(reshuffles), 0)
		 FROM resolve_stats WHERE game_id = ?`,
		gameID,
	).Scan(&t.Games,
		&t.Swaps, &t.Reverts,
		&t.Cycles, &t.Cascades,
		&t.BestChain,
		&t.BombsSpawned, &t.BombsDetonated,
		&t.TilesDestroyed, &t.Fallbacks,
		&t.Misplaced, &t.Reshuffles,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get resolve totals: %w", err)
	}
	return t, nil
}
