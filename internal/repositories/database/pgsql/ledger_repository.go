package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	"github.com/prestadero/lending-backend/internal/models"
	"github.com/prestadero/lending-backend/internal/utils/mapping"
	"github.com/prestadero/lending-backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal and accounting rows.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const journalEntryColumns = `entry_id, entry_date, description, account_code, debit, credit, source_type, source_id, created_at, created_by, last_updated_at, last_updated_by`

const accountingEntryColumns = `accounting_entry_id, loan_id, entry_type, amount, description, source_type, source_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveJournalEntriesInTx appends the journal rows of one business event within
// an open transaction. All rows go in one batch; a failed row fails the event.
func (r *PgxLedgerRepository) SaveJournalEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelJournalEntry(entry)
		batch.Queue(query,
			m.EntryID,
			m.EntryDate,
			m.Description,
			m.AccountCode,
			m.Debit,
			m.Credit,
			m.SourceType,
			m.SourceID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert journal entry batch", err)
		}
	}
	return nil
}

// SaveAccountingEntriesInTx appends legacy accounting rows within an open transaction.
func (r *PgxLedgerRepository) SaveAccountingEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.AccountingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO accounting_entries (` + accountingEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelAccountingEntry(entry)
		batch.Queue(query,
			m.AccountingEntryID,
			m.LoanID,
			m.EntryType,
			m.Amount,
			m.Description,
			m.SourceType,
			m.SourceID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert accounting entry batch", err)
		}
	}
	return nil
}

func scanJournalEntryRows(rows pgx.Rows) ([]models.JournalEntry, error) {
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.Description,
			&m.AccountCode,
			&m.Debit,
			&m.Credit,
			&m.SourceType,
			&m.SourceID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindJournalEntriesBySource retrieves the journal rows produced by one
// business event, ordered by creation time.
func (r *PgxLedgerRepository) FindJournalEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(sourceType), sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for source "+sourceID, err)
	}

	ms, err := scanJournalEntryRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal entry rows for source "+sourceID, err)
	}
	return mapping.ToDomainJournalEntrySlice(ms), nil
}

// ListJournalEntries retrieves a paginated list of journal rows using
// token-based pagination. It returns the entries, a token for the next page,
// and an error.
func (r *PgxLedgerRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
	`
	// Ordering must be stable: entry_date DESC with created_at as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}

	ms, err := scanJournalEntryRows(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry rows", err)
	}

	var newNextToken *string
	if len(ms) == fetchLimit {
		// More pages exist; the token points at the last returned row.
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainJournalEntrySlice(ms), newNextToken, nil
}

// FindAccountingEntriesBySource retrieves the legacy accounting rows produced
// by one business event.
func (r *PgxLedgerRepository) FindAccountingEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.AccountingEntry, error) {
	query := `
		SELECT ` + accountingEntryColumns + `
		FROM accounting_entries
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at ASC, accounting_entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(sourceType), sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting entries for source "+sourceID, err)
	}
	defer rows.Close()

	entries := []models.AccountingEntry{}
	for rows.Next() {
		var m models.AccountingEntry
		err := rows.Scan(
			&m.AccountingEntryID,
			&m.LoanID,
			&m.EntryType,
			&m.Amount,
			&m.Description,
			&m.SourceType,
			&m.SourceID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accounting entry row for source "+sourceID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounting entry rows for source "+sourceID, err)
	}

	return mapping.ToDomainAccountingEntrySlice(entries), nil
}
