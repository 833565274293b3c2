package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realtor-api/internal/domain"
)

// HomeRepository define el contrato de persistencia para listados.
// Las búsquedas por id sin resultado devuelven pgx.ErrNoRows.
type HomeRepository interface {
	Create(ctx context.Context, params CreateHomeParams) (domain.Home, error)
	GetByID(ctx context.Context, id int64) (domain.Home, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, filter domain.HomeFilter) ([]domain.Home, error)
	Update(ctx context.Context, id int64, update domain.HomeUpdate) (domain.Home, error)
	Delete(ctx context.Context, id int64) error
}

type CreateHomeParams struct {
	Address      string
	City         string
	Price        float64
	Bedrooms     int
	Bathrooms    float64
	LandSize     float64
	PropertyType domain.PropertyType
	RealtorID    int64
	ImageURLs    []string
}

// PgHomeRepository implementa HomeRepository usando pgxpool.
type PgHomeRepository struct {
	pool *pgxpool.Pool
}

func NewPgHomeRepository(pool *pgxpool.Pool) *PgHomeRepository {
	return &PgHomeRepository{pool: pool}
}

const homeColumns = `id, address, city, price, bedrooms, bathrooms, land_size, property_type, realtor_id, listed_at`

// Create inserta el listado y sus imágenes en una sola transacción.
func (r *PgHomeRepository) Create(ctx context.Context, params CreateHomeParams) (domain.Home, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Home{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertHome = `
		INSERT INTO homes (address, city, price, bedrooms, bathrooms, land_size, property_type, realtor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + homeColumns

	home, err := scanHome(tx.QueryRow(ctx, insertHome,
		params.Address,
		params.City,
		params.Price,
		params.Bedrooms,
		params.Bathrooms,
		params.LandSize,
		params.PropertyType,
		params.RealtorID,
	))
	if err != nil {
		return domain.Home{}, fmt.Errorf("insert home: %w", err)
	}

	const insertImage = `INSERT INTO images (url, home_id) VALUES ($1, $2) RETURNING id`
	for _, url := range params.ImageURLs {
		img := domain.Image{URL: url}
		if err := tx.QueryRow(ctx, insertImage, url, home.ID).Scan(&img.ID); err != nil {
			return domain.Home{}, fmt.Errorf("insert image: %w", err)
		}
		home.Images = append(home.Images, img)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Home{}, fmt.Errorf("commit tx: %w", err)
	}
	return home, nil
}

func (r *PgHomeRepository) GetByID(ctx context.Context, id int64) (domain.Home, error) {
	const query = `SELECT ` + homeColumns + ` FROM homes WHERE id = $1`
	home, err := scanHome(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Home{}, err
	}
	images, err := r.imagesFor(ctx, []int64{home.ID})
	if err != nil {
		return domain.Home{}, err
	}
	home.Images = images[home.ID]
	return home, nil
}

func (r *PgHomeRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT realtor_id FROM homes WHERE id = $1`
	var ownerID int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ownerID); err != nil {
		return 0, err
	}
	return ownerID, nil
}

// List devuelve los listados que cumplen el filtro, ordenados por id.
func (r *PgHomeRepository) List(ctx context.Context, filter domain.HomeFilter) ([]domain.Home, error) {
	where, args := buildHomeWhere(filter)
	query := `SELECT ` + homeColumns + ` FROM homes` + where + ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list homes: %w", err)
	}
	defer rows.Close()

	var (
		homes []domain.Home
		ids   []int64
	)
	for rows.Next() {
		home, err := scanHome(rows)
		if err != nil {
			return nil, err
		}
		homes = append(homes, home)
		ids = append(ids, home.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(homes) == 0 {
		return homes, nil
	}

	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range homes {
		homes[i].Images = images[homes[i].ID]
	}
	return homes, nil
}

// Update aplica solo los campos presentes. realtor_id nunca se modifica.
func (r *PgHomeRepository) Update(ctx context.Context, id int64, update domain.HomeUpdate) (domain.Home, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Address != nil {
		set("address", *update.Address)
	}
	if update.City != nil {
		set("city", *update.City)
	}
	if update.Price != nil {
		set("price", *update.Price)
	}
	if update.Bedrooms != nil {
		set("bedrooms", *update.Bedrooms)
	}
	if update.Bathrooms != nil {
		set("bathrooms", *update.Bathrooms)
	}
	if update.LandSize != nil {
		set("land_size", *update.LandSize)
	}
	if update.PropertyType != nil {
		set("property_type", *update.PropertyType)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE homes SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), homeColumns)
	home, err := scanHome(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Home{}, err
	}
	images, err := r.imagesFor(ctx, []int64{home.ID})
	if err != nil {
		return domain.Home{}, err
	}
	home.Images = images[home.ID]
	return home, nil
}

// Delete elimina el listado; imágenes y mensajes se eliminan en cascada.
func (r *PgHomeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM homes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgHomeRepository) imagesFor(ctx context.Context, homeIDs []int64) (map[int64][]domain.Image, error) {
	const query = `SELECT id, url, home_id FROM images WHERE home_id = ANY($1) ORDER BY id`
	rows, err := r.pool.Query(ctx, query, homeIDs)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.Image, len(homeIDs))
	for rows.Next() {
		var (
			img    domain.Image
			homeID int64
		)
		if err := rows.Scan(&img.ID, &img.URL, &homeID); err != nil {
			return nil, err
		}
		out[homeID] = append(out[homeID], img)
	}
	return out, rows.Err()
}

// buildHomeWhere traduce el filtro a una cláusula WHERE parametrizada.
// Los campos ausentes no agregan condiciones.
func buildHomeWhere(filter domain.HomeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.City != "" {
		add("city = $%d", filter.City)
	}
	if filter.PropertyType != "" {
		add("property_type = $%d", filter.PropertyType)
	}
	addRange(add, "price", filter.Price)
	addRange(add, "bedrooms", filter.Bedrooms)
	addRange(add, "bathrooms", filter.Bathrooms)
	addRange(add, "land_size", filter.LandSize)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func addRange[T int | float64](add func(string, any), column string, r *domain.Range[T]) {
	if r == nil {
		return
	}
	if r.Gte != nil {
		add(column+" >= $%d", *r.Gte)
	}
	if r.Lte != nil {
		add(column+" <= $%d", *r.Lte)
	}
}

func scanHome(row pgx.Row) (domain.Home, error) {
	var h domain.Home
	err := row.Scan(
		&h.ID,
		&h.Address,
		&h.City,
		&h.Price,
		&h.Bedrooms,
		&h.Bathrooms,
		&h.LandSize,
		&h.PropertyType,
		&h.RealtorID,
		&h.ListedAt,
	)
	if err != nil {
		return domain.Home{}, err
	}
	return h, nil
}
