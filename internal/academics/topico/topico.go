package topico

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sebuszqo/HouseholdBudget/internal/academics/disciplina"
)

const maxNomeLength = 100

var (
	ErrTopicoNotFound  = errors.New("topico not found")
	ErrUsuarioNotFound = errors.New("usuario not found")
	ErrNomeLength      = fmt.Errorf("nome is required, max length: %d", maxNomeLength)
)

type TopicoDiscussao struct {
	ID           int       `json:"id"`
	Nome         string    `json:"nome"`
	Data         time.Time `json:"data"`
	DisciplinaID int       `json:"disciplina_id"`
	CriadoPorID  int       `json:"criado_por_id"`
}

type ListResponse struct {
	MaxPage    int               `json:"maxPage"`
	TotalCount int               `json:"totalCount"`
	PageCount  int               `json:"pageCount"`
	Items      []TopicoDiscussao `json:"items"`
}

type Repository interface {
	createTopico(topico *TopicoDiscussao) error
	getTopicosAndCount(page, pageSize int, disciplinaID *int) ([]TopicoDiscussao, int, error)
	deleteTopico(id int) error
	usuarioExists(id int) (bool, error)
}

type topicoRepository struct {
	db *sql.DB
}

func NewTopicoRepository(db *sql.DB) Repository {
	return &topicoRepository{db: db}
}

func (r *topicoRepository) createTopico(topico *TopicoDiscussao) error {
	query := `
		INSERT INTO topicos_discussao (nome, data, disciplina_id, usuario_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(query, topico.Nome, topico.Data, topico.DisciplinaID, topico.CriadoPorID).Scan(&topico.ID)
	if err != nil {
		return fmt.Errorf("could not create topico: %v", err)
	}
	return nil
}

func (r *topicoRepository) getTopicosAndCount(page, pageSize int, disciplinaID *int) ([]TopicoDiscussao, int, error) {
	where := ""
	countArgs := []interface{}{}
	if disciplinaID != nil {
		where = " WHERE disciplina_id = $1"
		countArgs = append(countArgs, *disciplinaID)
	}

	var totalCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM topicos_discussao"+where, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("could not count topicos: %v", err)
	}

	args := append([]interface{}{}, countArgs...)
	query := fmt.Sprintf(`
		SELECT id, nome, data, disciplina_id, usuario_id
		FROM topicos_discussao%s
		ORDER BY data DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list topicos: %v", err)
	}
	defer rows.Close()

	var topicos []TopicoDiscussao
	for rows.Next() {
		var topico TopicoDiscussao
		if err := rows.Scan(&topico.ID, &topico.Nome, &topico.Data, &topico.DisciplinaID, &topico.CriadoPorID); err != nil {
			return nil, 0, fmt.Errorf("could not scan topico: %v", err)
		}
		topicos = append(topicos, topico)
	}
	return topicos, totalCount, rows.Err()
}

func (r *topicoRepository) deleteTopico(id int) error {
	result, err := r.db.Exec("DELETE FROM topicos_discussao WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("could not delete topico: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTopicoNotFound
	}
	return nil
}

func (r *topicoRepository) usuarioExists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM usuarios WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check usuario existence: %v", err)
	}
	return exists, nil
}

type Service interface {
	CreateTopico(nome string, disciplinaID, criadoPorID int) (*TopicoDiscussao, error)
	GetTopicos(page, pageSize int, disciplinaID *int) (*ListResponse, error)
	DeleteTopico(id int) error
}

type service struct {
	repo        Repository
	disciplinas disciplina.Repository
	now         func() time.Time
}

func NewTopicoService(repo Repository, disciplinas disciplina.Repository) Service {
	return &service{repo: repo, disciplinas: disciplinas, now: time.Now}
}

func (s *service) CreateTopico(nome string, disciplinaID, criadoPorID int) (*TopicoDiscussao, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" || len(nome) > maxNomeLength {
		return nil, ErrNomeLength
	}

	disciplinaExists, err := s.disciplinas.DisciplinaExists(disciplinaID)
	if err != nil {
		return nil, err
	}
	if !disciplinaExists {
		return nil, disciplina.ErrDisciplinaNotFound
	}

	usuarioExists, err := s.repo.usuarioExists(criadoPorID)
	if err != nil {
		return nil, err
	}
	if !usuarioExists {
		return nil, ErrUsuarioNotFound
	}

	topico := &TopicoDiscussao{
		Nome:         nome,
		Data:         s.now().UTC(),
		DisciplinaID: disciplinaID,
		CriadoPorID:  criadoPorID,
	}
	if err := s.repo.createTopico(topico); err != nil {
		return nil, err
	}
	return topico, nil
}

func (s *service) GetTopicos(page, pageSize int, disciplinaID *int) (*ListResponse, error) {
	topicos, totalCount, err := s.repo.getTopicosAndCount(page, pageSize, disciplinaID)
	if err != nil {
		return nil, err
	}
	if topicos == nil {
		topicos = []TopicoDiscussao{}
	}

	maxPage := totalCount / pageSize
	if totalCount%pageSize != 0 {
		maxPage++
	}

	return &ListResponse{
		MaxPage:    maxPage,
		TotalCount: totalCount,
		PageCount:  len(topicos),
		Items:      topicos,
	}, nil
}

func (s *service) DeleteTopico(id int) error {
	return s.repo.deleteTopico(id)
}
