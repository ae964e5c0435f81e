package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUnexpectedDatabase = errors.New("unexpected database error")

// GameResult is one finished game as recorded in the database.
type GameResult struct {
	RoomID          string
	Winner          string
	NorthSouthScore int
	EastWestScore   int
	Rounds          int
	FinishedAt      time.Time
}

// PostgresRepo records room metadata and finished games. It implements
// game.RoomStore.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

// SaveRoom records a room's creation. Recreating a room with the same
// id (after its actor stopped) is not an error.
func (r *PostgresRepo) SaveRoom(ctx context.Context, roomID string, createdAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO rooms(id, created_at) VALUES($1, $2) ON CONFLICT (id) DO NOTHING",
		roomID, createdAt)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
	return nil
}

// SaveResult appends a finished game for the room.
func (r *PostgresRepo) SaveResult(ctx context.Context, roomID string, winner string, scores [2]int, rounds int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO game_results(room_id, winner, north_south_score, east_west_score, rounds)
		 VALUES($1, $2, $3, $4, $5)`,
		roomID, winner, scores[0], scores[1], rounds)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
	return nil
}

// ResultsForRoom returns the room's finished games, newest first.
func (r *PostgresRepo) ResultsForRoom(ctx context.Context, roomID string) ([]GameResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT room_id, winner, north_south_score, east_west_score, rounds, finished_at
		 FROM game_results WHERE room_id = $1 ORDER BY finished_at DESC`,
		roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var res GameResult
		if err := rows.Scan(&res.RoomID, &res.Winner, &res.NorthSouthScore,
			&res.EastWestScore, &res.Rounds, &res.FinishedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// RoomExists reports whether a room id has ever been recorded.
func (r *PostgresRepo) RoomExists(ctx context.Context, roomID string) (bool, error) {
	row := r.pool.QueryRow(ctx, "SELECT 1 FROM rooms WHERE id = $1", roomID)
	var one int
	err := row.Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
}
