package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUsuario(usuario *Usuario) error
	getUsuarioByEmail(email string) (*Usuario, error)
	getUsuarioByID(id int) (*Usuario, error)
	getUsuarioByEmailOrMatricula(emailOrMatricula string) (*Usuario, error)
	usuarioExistsByEmailOrMatricula(email, matricula string) (*Usuario, error)
	updateUsuario(usuario *Usuario) error
	updateAtivo(id int, ativo bool) error
	updateSenha(id int, senhaHash string) error
	deleteUsuario(id int) error
	saveCodigo(usuarioID int, codigo, tipo string, expiresAt time.Time) error
	getCodigo(usuarioID int, tipo string) (string, time.Time, error)
	deleteCodigos(usuarioID int) error
	deleteExpiredCodes() (int64, error)
}

type usuarioRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &usuarioRepository{db: db}
}

const usuarioColumns = "id, nome, email, matricula, senha_hash, ativo, tipo, curso_id, data_cadastro"

func scanUsuario(row *sql.Row) (*Usuario, error) {
	var usuario Usuario
	err := row.Scan(&usuario.ID, &usuario.Nome, &usuario.Email, &usuario.Matricula,
		&usuario.SenhaHash, &usuario.Ativo, &usuario.Tipo, &usuario.CursoID, &usuario.DataCadastro)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &usuario, nil
}

func (r *usuarioRepository) createUsuario(usuario *Usuario) error {
	query := `
		INSERT INTO usuarios (nome, email, matricula, senha_hash, ativo, tipo, curso_id)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
		RETURNING id, data_cadastro;
	`
	err := r.db.QueryRow(query, usuario.Nome, usuario.Email, usuario.Matricula,
		usuario.SenhaHash, usuario.Tipo, usuario.CursoID).Scan(&usuario.ID, &usuario.DataCadastro)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}
	return nil
}

func (r *usuarioRepository) getUsuarioByEmail(email string) (*Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE email = $1", usuarioColumns)
	return scanUsuario(r.db.QueryRow(query, email))
}

func (r *usuarioRepository) getUsuarioByID(id int) (*Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE id = $1", usuarioColumns)
	return scanUsuario(r.db.QueryRow(query, id))
}

func (r *usuarioRepository) getUsuarioByEmailOrMatricula(emailOrMatricula string) (*Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE email = $1 OR matricula = $1", usuarioColumns)
	return scanUsuario(r.db.QueryRow(query, emailOrMatricula))
}

func (r *usuarioRepository) usuarioExistsByEmailOrMatricula(email, matricula string) (*Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE email = $1 OR matricula = $2", usuarioColumns)
	return scanUsuario(r.db.QueryRow(query, email, matricula))
}

func (r *usuarioRepository) updateUsuario(usuario *Usuario) error {
	query := `
		UPDATE usuarios
		SET nome = $2, email = $3, curso_id = $4
		WHERE id = $1
	`
	_, err := r.db.Exec(query, usuario.ID, usuario.Nome, usuario.Email, usuario.CursoID)
	if err != nil {
		return fmt.Errorf("could not update user: %v", err)
	}
	return nil
}

func (r *usuarioRepository) updateAtivo(id int, ativo bool) error {
	_, err := r.db.Exec("UPDATE usuarios SET ativo = $2 WHERE id = $1", id, ativo)
	if err != nil {
		return fmt.Errorf("could not update activation status: %v", err)
	}
	return nil
}

func (r *usuarioRepository) updateSenha(id int, senhaHash string) error {
	_, err := r.db.Exec("UPDATE usuarios SET senha_hash = $2 WHERE id = $1", id, senhaHash)
	if err != nil {
		return fmt.Errorf("could not update password: %v", err)
	}
	return nil
}

// deleteUsuario removes pending codes and the user row in one transaction.
func (r *usuarioRepository) deleteUsuario(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %v", err)
	}
	if _, err := tx.Exec("DELETE FROM codigos_usuario WHERE usuario_id = $1", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete user codes: %v", err)
	}
	if _, err := tx.Exec("DELETE FROM usuarios WHERE id = $1", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete user: %v", err)
	}
	return tx.Commit()
}

// saveCodigo replaces any existing code of the same type; only the latest
// code is ever valid.
func (r *usuarioRepository) saveCodigo(usuarioID int, codigo, tipo string, expiresAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %v", err)
	}
	if _, err := tx.Exec("DELETE FROM codigos_usuario WHERE usuario_id = $1 AND tipo = $2", usuarioID, tipo); err != nil {
		tx.Rollback()
		return fmt.Errorf("could not clear previous codes: %v", err)
	}
	query := `
		INSERT INTO codigos_usuario (usuario_id, codigo, tipo, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(query, usuarioID, codigo, tipo, expiresAt); err != nil {
		tx.Rollback()
		return fmt.Errorf("could not save verification code: %v", err)
	}
	return tx.Commit()
}

func (r *usuarioRepository) getCodigo(usuarioID int, tipo string) (string, time.Time, error) {
	query := `
		SELECT codigo, expires_at
		FROM codigos_usuario
		WHERE usuario_id = $1 AND tipo = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var codigo string
	var expiresAt time.Time
	err := r.db.QueryRow(query, usuarioID, tipo).Scan(&codigo, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, fmt.Errorf("could not retrieve verification code: %v", err)
	}
	return codigo, expiresAt, nil
}

func (r *usuarioRepository) deleteCodigos(usuarioID int) error {
	_, err := r.db.Exec("DELETE FROM codigos_usuario WHERE usuario_id = $1", usuarioID)
	if err != nil {
		return fmt.Errorf("could not delete verification codes: %v", err)
	}
	return nil
}

func (r *usuarioRepository) deleteExpiredCodes() (int64, error) {
	result, err := r.db.Exec("DELETE FROM codigos_usuario WHERE expires_at < now()")
	if err != nil {
		return 0, fmt.Errorf("could not delete expired codes: %v", err)
	}
	return result.RowsAffected()
}
