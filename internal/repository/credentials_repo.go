package repository

import "context"

// CredentialsRepository keeps password hashes in their own table, written
// exactly once inside the registration transaction. Hashes never travel on
// any read path other than login verification.
type CredentialsRepository struct {
	db DBTX
}

func NewCredentialsRepository(db DBTX) *CredentialsRepository {
	return &CredentialsRepository{db: db}
}

func (r *CredentialsRepository) Set(ctx context.Context, userID int64, hash string) error {
	query := `INSERT INTO user_credentials (user_id, password_hash) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, userID, hash)
	return err
}

func (r *CredentialsRepository) GetHash(ctx context.Context, userID int64) (string, error) {
	query := `SELECT password_hash FROM user_credentials WHERE user_id = $1`
	var hash string
	if err := r.db.QueryRow(ctx, query, userID).Scan(&hash); err != nil {
		return "", err
	}
	return hash, nil
}
