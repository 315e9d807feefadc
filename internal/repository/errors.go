package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("record not found")

func wrapNotFound(err error, table string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, ErrNotFound)
	}
	return err
}
