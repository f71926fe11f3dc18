package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlListClientsByAdvisor = `
SELECT id, advisor_id, name, email, phone, created_at
FROM clients
WHERE advisor_id = $1
ORDER BY name ASC`

// ListClientsByAdvisor returns an advisor's clients ordered by name
func (s *Store) ListClientsByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]Client, error) {
	clients := []Client{}
	if err := s.db.SelectContext(ctx, &clients, sqlListClientsByAdvisor, advisorID); err != nil {
		s.logger.Error(ctx, "failed to list clients", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

const sqlGetClientByID = `
SELECT id, advisor_id, name, email, phone, created_at
FROM clients
WHERE id = $1`

// GetClientByID retrieves a client by id
func (s *Store) GetClientByID(ctx context.Context, clientID uuid.UUID) (Client, error) {
	var client Client
	if err := s.db.GetContext(ctx, &client, sqlGetClientByID, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}
