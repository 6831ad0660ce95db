package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"readrise/internal/modules/library/domain"
	libraryout "readrise/internal/modules/library/port/out"
	"readrise/internal/platform/database"
	apperrors "readrise/internal/platform/errors"
)

type SQLUserStore struct {
	db *database.DB
}

func NewSQLUserStore(db *database.DB) libraryout.UserStore {
	return &SQLUserStore{db: db}
}

func (s *SQLUserStore) Ensure(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (id, display_name, created_at) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`
	if _, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt), user.ID, user.DisplayName, database.Millis(user.CreatedAt)); err != nil {
		return fmt.Errorf("ensure user %s: %w", user.ID, err)
	}
	return nil
}

func (s *SQLUserStore) Find(ctx context.Context, userID string) (domain.User, error) {
	const q = `SELECT id, display_name, created_at FROM users WHERE id = ?`
	var (
		user      domain.User
		createdAt int64
	)
	err := s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), userID).Scan(&user.ID, &user.DisplayName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	user.CreatedAt = database.FromMillis(createdAt)
	return user, nil
}

func (s *SQLUserStore) UpdateDisplayName(ctx context.Context, user domain.User) error {
	const stmt = `UPDATE users SET display_name = ? WHERE id = ?`
	res, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt), user.DisplayName, user.ID)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type SQLBookStore struct {
	db *database.DB
}

func NewSQLBookStore(db *database.DB) libraryout.BookStore {
	return &SQLBookStore{db: db}
}

func (s *SQLBookStore) Create(ctx context.Context, book domain.Book) error {
	authors, err := json.Marshal(nonNil(book.Authors))
	if err != nil {
		return fmt.Errorf("encode authors: %w", err)
	}
	conn := s.db.Conn(ctx)
	const insertBook = `INSERT INTO books (id, title, authors, page_count, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := conn.ExecContext(ctx, s.db.Rebind(insertBook), book.ID, book.Title, string(authors), database.NullInt(book.PageCount), database.Millis(book.CreatedAt)); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	const insertGenre = `INSERT INTO book_genres (book_id, position, genre) VALUES (?, ?, ?)`
	for pos, genre := range book.Genres {
		if _, err := conn.ExecContext(ctx, s.db.Rebind(insertGenre), book.ID, pos, genre); err != nil {
			return fmt.Errorf("insert genre: %w", err)
		}
	}
	return nil
}

type SQLEntryStore struct {
	db *database.DB
}

func NewSQLEntryStore(db *database.DB) libraryout.EntryStore {
	return &SQLEntryStore{db: db}
}

const entryColumns = `ub.id, ub.user_id, ub.shelf, ub.started_on, ub.finished_on, ub.abandoned_on, ub.created_at, ub.updated_at,
  b.id, b.title, b.authors, b.page_count, b.created_at`

func (s *SQLEntryStore) Create(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO user_books (id, user_id, book_id, shelf, started_on, finished_on, abandoned_on, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt),
		entry.ID, entry.UserID, entry.Book.ID, string(entry.Shelf),
		database.NullDate(entry.StartedOn), database.NullDate(entry.FinishedOn), database.NullDate(entry.AbandonedOn),
		database.Millis(entry.CreatedAt), database.Millis(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert library entry: %w", err)
	}
	return nil
}

func (s *SQLEntryStore) FindOwned(ctx context.Context, userID, entryID string) (domain.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM user_books ub JOIN books b ON b.id = ub.book_id WHERE ub.id = ? AND ub.user_id = ?`
	row := s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), entryID, userID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("load library entry: %w", err)
	}
	genres, err := s.genres(ctx, []string{entry.Book.ID})
	if err != nil {
		return domain.Entry{}, err
	}
	entry.Book.Genres = genres[entry.Book.ID]
	return entry, nil
}

func (s *SQLEntryStore) List(ctx context.Context, userID string, shelf *domain.Shelf) ([]domain.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM user_books ub JOIN books b ON b.id = ub.book_id WHERE ub.user_id = ?`
	args := []any{userID}
	if shelf != nil {
		q += ` AND ub.shelf = ?`
		args = append(args, string(*shelf))
	}
	q += ` ORDER BY ub.updated_at DESC, ub.id`

	rows, err := s.db.Conn(ctx).QueryContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list library entries: %w", err)
	}
	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan library entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate library entries: %w", err)
	}
	_ = rows.Close()

	bookIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		bookIDs = append(bookIDs, entry.Book.ID)
	}
	genres, err := s.genres(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Book.Genres = genres[entries[i].Book.ID]
	}
	return entries, nil
}

func (s *SQLEntryStore) UpdateShelf(ctx context.Context, entry domain.Entry) error {
	const stmt = `
UPDATE user_books SET shelf = ?, started_on = ?, finished_on = ?, abandoned_on = ?, updated_at = ?
WHERE id = ? AND user_id = ?`
	res, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt),
		string(entry.Shelf), database.NullDate(entry.StartedOn), database.NullDate(entry.FinishedOn), database.NullDate(entry.AbandonedOn),
		database.Millis(entry.UpdatedAt), entry.ID, entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("update library entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update library entry: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an owned entry. Sessions, progress and the review go with it
// through ON DELETE CASCADE; the book row is dropped once no entry uses it.
func (s *SQLEntryStore) Delete(ctx context.Context, userID, entryID string) error {
	conn := s.db.Conn(ctx)
	var bookID string
	const find = `SELECT book_id FROM user_books WHERE id = ? AND user_id = ?`
	err := conn.QueryRowContext(ctx, s.db.Rebind(find), entryID, userID).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load library entry: %w", err)
	}

	const del = `DELETE FROM user_books WHERE id = ? AND user_id = ?`
	res, err := conn.ExecContext(ctx, s.db.Rebind(del), entryID, userID)
	if err != nil {
		return fmt.Errorf("delete library entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete library entry: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}

	const orphan = `DELETE FROM books WHERE id = ? AND NOT EXISTS (SELECT 1 FROM user_books WHERE book_id = ?)`
	if _, err := conn.ExecContext(ctx, s.db.Rebind(orphan), bookID, bookID); err != nil {
		return fmt.Errorf("delete orphaned book: %w", err)
	}
	return nil
}

func (s *SQLEntryStore) genres(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	if len(bookIDs) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(bookIDs)), ", ")
	q := `SELECT book_id, genre FROM book_genres WHERE book_id IN (` + placeholders + `) ORDER BY book_id, position`
	args := make([]any, 0, len(bookIDs))
	for _, id := range bookIDs {
		args = append(args, id)
	}
	rows, err := s.db.Conn(ctx).QueryContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var bookID, genre string
		if err := rows.Scan(&bookID, &genre); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		out[bookID] = append(out[bookID], genre)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (domain.Entry, error) {
	var (
		entry                          domain.Entry
		shelf, authors                 string
		started, finished, abandoned   sql.NullString
		createdAt, updatedAt, bookTime int64
		pageCount                      sql.NullInt64
	)
	if err := row.Scan(
		&entry.ID, &entry.UserID, &shelf, &started, &finished, &abandoned, &createdAt, &updatedAt,
		&entry.Book.ID, &entry.Book.Title, &authors, &pageCount, &bookTime,
	); err != nil {
		return domain.Entry{}, err
	}
	entry.Shelf = domain.Shelf(shelf)
	entry.CreatedAt = database.FromMillis(createdAt)
	entry.UpdatedAt = database.FromMillis(updatedAt)
	entry.Book.CreatedAt = database.FromMillis(bookTime)
	entry.Book.PageCount = database.IntFromNull(pageCount)
	if err := json.Unmarshal([]byte(authors), &entry.Book.Authors); err != nil {
		return domain.Entry{}, fmt.Errorf("decode authors: %w", err)
	}
	var err error
	if entry.StartedOn, err = database.DateFromNull(started); err != nil {
		return domain.Entry{}, err
	}
	if entry.FinishedOn, err = database.DateFromNull(finished); err != nil {
		return domain.Entry{}, err
	}
	if entry.AbandonedOn, err = database.DateFromNull(abandoned); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
