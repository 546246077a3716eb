package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	"github.com/prestadero/lending-backend/internal/models"
	"github.com/prestadero/lending-backend/internal/utils/mapping"
)

type PgxChartRepository struct {
	BaseRepository
}

// newPgxChartRepository creates a new repository for the chart of accounts.
func newPgxChartRepository(pool *pgxpool.Pool) portsrepo.ChartRepositoryFacade {
	return &PgxChartRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChartRepository implements portsrepo.ChartRepositoryFacade
var _ portsrepo.ChartRepositoryFacade = (*PgxChartRepository)(nil)

// FindAccountByCode retrieves one chart account by its stable code.
func (r *PgxChartRepository) FindAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	query := `SELECT code, name, type, category FROM chart_of_accounts WHERE code = $1;`

	var m models.ChartAccount
	err := r.Pool.QueryRow(ctx, query, code).Scan(&m.Code, &m.Name, &m.Type, &m.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + code + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}

	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

// ListAccounts retrieves the full chart ordered by code.
func (r *PgxChartRepository) ListAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	query := `SELECT code, name, type, category FROM chart_of_accounts ORDER BY code ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart of accounts", err)
	}
	defer rows.Close()

	accounts := []models.ChartAccount{}
	for rows.Next() {
		var m models.ChartAccount
		if err := rows.Scan(&m.Code, &m.Name, &m.Type, &m.Category); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan chart account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating chart account rows", err)
	}

	return mapping.ToDomainChartAccountSlice(accounts), nil
}
