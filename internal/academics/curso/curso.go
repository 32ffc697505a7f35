package curso

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const maxNomeLength = 45

var (
	ErrCursoNotFound = errors.New("curso not found")
	ErrNomeLength    = fmt.Errorf("nome is required, max length: %d", maxNomeLength)
)

type Curso struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

type Repository interface {
	createCurso(curso *Curso) error
	getCursoByID(id int) (*Curso, error)
	getCursos() ([]Curso, error)
	CursoExists(id int) (bool, error)
}

type cursoRepository struct {
	db *sql.DB
}

func NewCursoRepository(db *sql.DB) Repository {
	return &cursoRepository{db: db}
}

func (r *cursoRepository) createCurso(curso *Curso) error {
	err := r.db.QueryRow("INSERT INTO cursos (nome) VALUES ($1) RETURNING id", curso.Nome).Scan(&curso.ID)
	if err != nil {
		return fmt.Errorf("could not create curso: %v", err)
	}
	return nil
}

func (r *cursoRepository) getCursoByID(id int) (*Curso, error) {
	var curso Curso
	err := r.db.QueryRow("SELECT id, nome FROM cursos WHERE id = $1", id).Scan(&curso.ID, &curso.Nome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCursoNotFound
		}
		return nil, fmt.Errorf("could not find curso: %v", err)
	}
	return &curso, nil
}

func (r *cursoRepository) getCursos() ([]Curso, error) {
	rows, err := r.db.Query("SELECT id, nome FROM cursos ORDER BY nome")
	if err != nil {
		return nil, fmt.Errorf("could not list cursos: %v", err)
	}
	defer rows.Close()

	var cursos []Curso
	for rows.Next() {
		var curso Curso
		if err := rows.Scan(&curso.ID, &curso.Nome); err != nil {
			return nil, fmt.Errorf("could not scan curso: %v", err)
		}
		cursos = append(cursos, curso)
	}
	return cursos, rows.Err()
}

// CursoExists is exported so the user service can verify course references
// during registration.
func (r *cursoRepository) CursoExists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM cursos WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check curso existence: %v", err)
	}
	return exists, nil
}

type Service interface {
	CreateCurso(nome string) (*Curso, error)
	GetCursos() ([]Curso, error)
	GetCurso(id int) (*Curso, error)
}

type service struct {
	repo Repository
}

func NewCursoService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCurso(nome string) (*Curso, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" || len(nome) > maxNomeLength {
		return nil, ErrNomeLength
	}
	curso := &Curso{Nome: nome}
	if err := s.repo.createCurso(curso); err != nil {
		return nil, err
	}
	return curso, nil
}

func (s *service) GetCursos() ([]Curso, error) {
	cursos, err := s.repo.getCursos()
	if err != nil {
		return nil, err
	}
	if cursos == nil {
		cursos = []Curso{}
	}
	return cursos, nil
}

func (s *service) GetCurso(id int) (*Curso, error) {
	return s.repo.getCursoByID(id)
}
