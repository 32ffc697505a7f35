package disciplina

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sebuszqo/HouseholdBudget/internal/academics/curso"
)

const (
	maxNomeLength      = 45
	maxProfessorLength = 45
	maxCodigoLength    = 10
)

var (
	ErrDisciplinaNotFound = errors.New("disciplina not found")
	ErrNomeLength         = fmt.Errorf("nome is required, max length: %d", maxNomeLength)
	ErrProfessorLength    = fmt.Errorf("professor is required, max length: %d", maxProfessorLength)
	ErrCodigoLength       = fmt.Errorf("codigo max length: %d", maxCodigoLength)
)

type Disciplina struct {
	ID               int     `json:"id"`
	Nome             string  `json:"nome"`
	Professor        string  `json:"professor"`
	CursoID          int     `json:"curso_id"`
	QuantidadeAlunos *int    `json:"quantidade_alunos"`
	Codigo           *string `json:"codigo"`
}

type ListResponse struct {
	MaxPage    int          `json:"maxPage"`
	TotalCount int          `json:"totalCount"`
	PageCount  int          `json:"pageCount"`
	Items      []Disciplina `json:"items"`
}

type Repository interface {
	createDisciplina(disciplina *Disciplina) error
	getDisciplinaByID(id int) (*Disciplina, error)
	getDisciplinasAndCount(page, pageSize int) ([]Disciplina, int, error)
	deleteDisciplina(id int) error
	DisciplinaExists(id int) (bool, error)
}

type disciplinaRepository struct {
	db *sql.DB
}

func NewDisciplinaRepository(db *sql.DB) Repository {
	return &disciplinaRepository{db: db}
}

func (r *disciplinaRepository) createDisciplina(disciplina *Disciplina) error {
	query := `
		INSERT INTO disciplinas (nome, professor, curso_id, quantidade_alunos, codigo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(query, disciplina.Nome, disciplina.Professor, disciplina.CursoID,
		disciplina.QuantidadeAlunos, disciplina.Codigo).Scan(&disciplina.ID)
	if err != nil {
		return fmt.Errorf("could not create disciplina: %v", err)
	}
	return nil
}

func (r *disciplinaRepository) getDisciplinaByID(id int) (*Disciplina, error) {
	query := "SELECT id, nome, professor, curso_id, quantidade_alunos, codigo FROM disciplinas WHERE id = $1"
	var d Disciplina
	err := r.db.QueryRow(query, id).Scan(&d.ID, &d.Nome, &d.Professor, &d.CursoID, &d.QuantidadeAlunos, &d.Codigo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDisciplinaNotFound
		}
		return nil, fmt.Errorf("could not find disciplina: %v", err)
	}
	return &d, nil
}

func (r *disciplinaRepository) getDisciplinasAndCount(page, pageSize int) ([]Disciplina, int, error) {
	var totalCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM disciplinas").Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("could not count disciplinas: %v", err)
	}

	query := `
		SELECT id, nome, professor, curso_id, quantidade_alunos, codigo
		FROM disciplinas
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list disciplinas: %v", err)
	}
	defer rows.Close()

	var disciplinas []Disciplina
	for rows.Next() {
		var d Disciplina
		if err := rows.Scan(&d.ID, &d.Nome, &d.Professor, &d.CursoID, &d.QuantidadeAlunos, &d.Codigo); err != nil {
			return nil, 0, fmt.Errorf("could not scan disciplina: %v", err)
		}
		disciplinas = append(disciplinas, d)
	}
	return disciplinas, totalCount, rows.Err()
}

func (r *disciplinaRepository) deleteDisciplina(id int) error {
	result, err := r.db.Exec("DELETE FROM disciplinas WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("could not delete disciplina: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDisciplinaNotFound
	}
	return nil
}

func (r *disciplinaRepository) DisciplinaExists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM disciplinas WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check disciplina existence: %v", err)
	}
	return exists, nil
}

type Service interface {
	CreateDisciplina(nome, professor string, cursoID int, quantidadeAlunos *int, codigo *string) (*Disciplina, error)
	GetDisciplinas(page, pageSize int) (*ListResponse, error)
	GetDisciplina(id int) (*Disciplina, error)
	DeleteDisciplina(id int) error
}

type service struct {
	repo   Repository
	cursos curso.Repository
}

func NewDisciplinaService(repo Repository, cursos curso.Repository) Service {
	return &service{repo: repo, cursos: cursos}
}

func (s *service) CreateDisciplina(nome, professor string, cursoID int, quantidadeAlunos *int, codigo *string) (*Disciplina, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" || len(nome) > maxNomeLength {
		return nil, ErrNomeLength
	}
	professor = strings.TrimSpace(professor)
	if professor == "" || len(professor) > maxProfessorLength {
		return nil, ErrProfessorLength
	}
	if codigo != nil && len(*codigo) > maxCodigoLength {
		return nil, ErrCodigoLength
	}

	exists, err := s.cursos.CursoExists(cursoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, curso.ErrCursoNotFound
	}

	disciplina := &Disciplina{
		Nome:             nome,
		Professor:        professor,
		CursoID:          cursoID,
		QuantidadeAlunos: quantidadeAlunos,
		Codigo:           codigo,
	}
	if err := s.repo.createDisciplina(disciplina); err != nil {
		return nil, err
	}
	return disciplina, nil
}

func (s *service) GetDisciplinas(page, pageSize int) (*ListResponse, error) {
	disciplinas, totalCount, err := s.repo.getDisciplinasAndCount(page, pageSize)
	if err != nil {
		return nil, err
	}
	if disciplinas == nil {
		disciplinas = []Disciplina{}
	}

	maxPage := totalCount / pageSize
	if totalCount%pageSize != 0 {
		maxPage++
	}

	return &ListResponse{
		MaxPage:    maxPage,
		TotalCount: totalCount,
		PageCount:  len(disciplinas),
		Items:      disciplinas,
	}, nil
}

func (s *service) GetDisciplina(id int) (*Disciplina, error) {
	return s.repo.getDisciplinaByID(id)
}

func (s *service) DeleteDisciplina(id int) error {
	return s.repo.deleteDisciplina(id)
}
