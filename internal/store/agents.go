package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/outboundhq/scribe/internal/agent"
)

const agentColumns = `id, user_id, name, website, description, contact_person_name,
	contact_email, contact_phone, signature, tone, language, business_hours,
	created_at, updated_at`

// CreateAgent inserts a new agent and returns it with timestamps set.
func (s *Store) CreateAgent(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO agents (id, user_id, name, website, description, contact_person_name,
			contact_email, contact_phone, signature, tone, language, business_hours,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Name, a.Website, a.Description, a.ContactPersonName,
		a.ContactEmail, a.ContactPhone, a.Signature, a.Tone, a.Language, a.BusinessHours,
	)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return agent.Agent{}, fmt.Errorf("insert agent: %w", err)
	}
	return a, nil
}

// GetAgent fetches one agent scoped to its owner.
func (s *Store) GetAgent(ctx context.Context, userID, id uuid.UUID) (agent.Agent, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+agentColumns+`
		FROM agents
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	a, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.Agent{}, ErrNotFound
		}
		return agent.Agent{}, fmt.Errorf("get agent: %w", err)
	}
	return a, nil
}

// ListAgents returns all agents owned by a user, newest first.
func (s *Store) ListAgents(ctx context.Context, userID uuid.UUID) ([]agent.Agent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+agentColumns+`
		FROM agents
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []agent.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// UpdateAgent persists an updated agent snapshot, scoped to its owner.
func (s *Store) UpdateAgent(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE agents
		SET name = $3, website = $4, description = $5, contact_person_name = $6,
			contact_email = $7, contact_phone = $8, signature = $9, tone = $10,
			language = $11, business_hours = $12, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`,
		a.ID, a.UserID, a.Name, a.Website, a.Description, a.ContactPersonName,
		a.ContactEmail, a.ContactPhone, a.Signature, a.Tone, a.Language, a.BusinessHours,
	)
	if err := row.Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.Agent{}, ErrNotFound
		}
		return agent.Agent{}, fmt.Errorf("update agent: %w", err)
	}
	return a, nil
}

// DeleteAgent removes an agent scoped to its owner.
func (s *Store) DeleteAgent(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM agents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAgent(row pgx.Row) (agent.Agent, error) {
	var a agent.Agent
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Website, &a.Description, &a.ContactPersonName,
		&a.ContactEmail, &a.ContactPhone, &a.Signature, &a.Tone, &a.Language, &a.BusinessHours,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
