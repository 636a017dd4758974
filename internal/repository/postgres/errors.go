package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE коды, которые мы различаем
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// pgError - код и имя ограничения из ошибки драйвера. Поддерживаются оба драйвера:
// pgx (основной) и lib/pq (используется в тестах).
func pgError(err error) (code, constraint string, ok bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}

	return "", "", false
}

func isUniqueViolation(err error) bool {
	code, _, ok := pgError(err)
	return ok && code == codeUniqueViolation
}

// isForeignKeyViolation возвращает true, если нарушено FK ограничение,
// имя которого содержит fragment (пустой fragment - любое)
func isForeignKeyViolation(err error, fragment string) bool {
	code, constraint, ok := pgError(err)
	if !ok || code != codeForeignKeyViolation {
		return false
	}
	return fragment == "" || strings.Contains(constraint, fragment)
}

func isCheckViolation(err error) bool {
	code, _, ok := pgError(err)
	return ok && code == codeCheckViolation
}

// escapeLike экранирует спецсимволы LIKE, чтобы пользовательский ввод искался буквально
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// rowsAffected - число затронутых строк результата Exec; ошибку Exec или драйвера возвращает как есть
func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
