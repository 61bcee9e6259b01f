package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"petshop-backend/internal/model"
)

const petColumns = `id, user_id, name, breed, gender, birthday, age, description, photo, created_at, updated_at`

type petRepository struct {
	db *sql.DB
}

func NewPetRepository(db *sql.DB) *petRepository {
	return &petRepository{db}
}

func (r *petRepository) Create(ctx context.Context, p *model.Pet) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO pets (user_id, name, breed, gender, birthday, age, description, photo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Breed, p.Gender, p.Birthday, p.Age, p.Description, p.Photo)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get pet id: %w", err)
	}
	p.ID = int(id)
	return nil
}

func (r *petRepository) FindByID(ctx context.Context, id int) (*model.Pet, error) {
	p, err := scanPet(conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}
	return p, nil
}

func (r *petRepository) FindByUserID(ctx context.Context, userID int) ([]*model.Pet, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	defer rows.Close()

	pets := []*model.Pet{}
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (r *petRepository) Update(ctx context.Context, p *model.Pet) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		UPDATE pets SET name = ?, breed = ?, gender = ?, birthday = ?, age = ?, description = ?, photo = ?
		WHERE id = ?`,
		p.Name, p.Breed, p.Gender, p.Birthday, p.Age, p.Description, p.Photo, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id int) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	return nil
}

func scanPet(row rowScanner) (*model.Pet, error) {
	var p model.Pet
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Breed, &p.Gender, &p.Birthday, &p.Age,
		&description, &p.Photo, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}
