package repository

import (
	"context"

	"timebank-service/src/internal/entity"
	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type SkillRepository struct {
	DB mysql.DBInterface
}

func NewSkillRepository(db mysql.DBInterface) *SkillRepository {
	return &SkillRepository{
		DB: db,
	}
}

func (r *SkillRepository) Create(ctx context.Context, skill *entity.Skill) (uint64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO skills (name, description) VALUES (?, ?)`
	res, err := db.ExecContext(ctx, query, skill.Name, skill.Description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SkillRepository) List(ctx context.Context) ([]entity.Skill, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var skills []entity.Skill
	query := `SELECT id, name, description, created_at, updated_at FROM skills ORDER BY name ASC`
	err = db.SelectContext(ctx, &skills, query)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id uint64) (*entity.Skill, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var skill entity.Skill
	query := `SELECT id, name, description, created_at, updated_at FROM skills WHERE id = ? LIMIT 1`
	err = db.GetContext(ctx, &skill, query, id)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// ExistsByName matches case-insensitively, same collation the unique key
// on skills.name uses.
func (r *SkillRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var id uint64
	query := `SELECT id FROM skills WHERE LOWER(name) = LOWER(?) LIMIT 1`
	err = db.GetContext(ctx, &id, query, name)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SkillRepository) Update(ctx context.Context, skill *entity.Skill) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `UPDATE skills SET name = ?, description = ?, updated_at = NOW() WHERE id = ?`
	res, err := db.ExecContext(ctx, query, skill.Name, skill.Description, skill.ID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *SkillRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `DELETE FROM skills WHERE id = ?`
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// EnsureByName resolves a skill id, inserting the name when the catalog
// does not have it yet. The unique key on name keeps concurrent inserts
// from duplicating.
func (r *SkillRepository) EnsureByName(ctx context.Context, ext sqlx.ExtContext, name string) (uint64, error) {
	res, err := ext.ExecContext(ctx, `INSERT IGNORE INTO skills (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		return uint64(id), nil
	}

	var id uint64
	err = sqlx.GetContext(ctx, ext, &id, `SELECT id FROM skills WHERE LOWER(name) = LOWER(?) LIMIT 1`, name)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ReplaceUserSkills swaps the user's skill set for skillIDs. The caller
// owns the transaction.
func (r *SkillRepository) ReplaceUserSkills(ctx context.Context, ext sqlx.ExtContext, userID uint64, skillIDs []uint64) error {
	if _, err := ext.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, skillID := range skillIDs {
		if _, err := ext.ExecContext(ctx, `INSERT INTO user_skills (user_id, skill_id) VALUES (?, ?)`, userID, skillID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SkillRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.UserSkill, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var skills []entity.UserSkill
	query := `
		SELECT s.id, s.name
		FROM user_skills us
		JOIN skills s ON us.skill_id = s.id
		WHERE us.user_id = ?
		ORDER BY s.name ASC
	`
	err = db.SelectContext(ctx, &skills, query, userID)
	if err != nil {
		return nil, err
	}
	return skills, nil
}
