package user

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	emailService "github.com/sebuszqo/HouseholdBudget/internal/email"
)

const (
	maxNomeLength      = 45
	maxEmailLength     = 60
	maxMatriculaLength = 20
	minSenhaLength     = 8
	bcryptCost         = 12
	codeTTL            = 10 * time.Minute
	CodeVerifyType     = "verify"
	CodeResetType      = "reset"

	TipoAdmin     = "Admin"
	TipoProfessor = "Professor"
	TipoUser      = "User"
)

var (
	ErrInvalidEmail            = errors.New("email address is not valid")
	ErrNomeLength              = fmt.Errorf("nome is required, max length: %d", maxNomeLength)
	ErrMatriculaLength         = fmt.Errorf("matricula is required, max length: %d", maxMatriculaLength)
	ErrSenhaLength             = fmt.Errorf("senha is too short, min length: %d", minSenhaLength)
	ErrInvalidTipo             = errors.New("tipo must be 'Admin', 'Professor' or 'User'")
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrMatriculaAlreadyExists  = errors.New("matricula already exists")
	ErrCursoNotFound           = errors.New("curso not found")
	ErrInternalError           = errors.New("internal Server Error")
	ErrUserAlreadyVerified     = errors.New("user already verified")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrVerificationCodeExpired = errors.New("verification code expired")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserNotActive           = errors.New("account not activated, confirm your email first")
)

type Usuario struct {
	ID           int       `json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	Matricula    string    `json:"matricula"`
	SenhaHash    string    `json:"-"`
	Ativo        bool      `json:"ativo"`
	Tipo         string    `json:"tipo"`
	CursoID      int       `json:"curso_id"`
	DataCadastro time.Time `json:"data_cadastro"`
}

// CursoChecker is satisfied by the curso repository; registration refuses
// users pointing at a course that does not exist.
type CursoChecker interface {
	CursoExists(id int) (bool, error)
}

type Service interface {
	Register(nome, email, matricula, senha, tipo string, cursoID int) (*Usuario, error)
	VerifyRegistrationCode(email, code string) error
	Authenticate(emailOrMatricula, senha string) (*Usuario, error)
	GetUserByID(id int) (*Usuario, error)
	RequestPasswordReset(email string) error
	ConfirmPasswordReset(email, code, newSenha string) error
	UpdateUsuario(id int, nome, email string, cursoID int) (*Usuario, error)
	DeleteUsuario(id int) error
	PurgeExpiredCodes() error
}

type service struct {
	repo         Repository
	cursos       CursoChecker
	emailService emailService.EmailSender
}

func NewUserService(repo Repository, cursos CursoChecker, emailService emailService.EmailSender) Service {
	return &service{
		repo:         repo,
		cursos:       cursos,
		emailService: emailService,
	}
}

func hashSenha(senha string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(senha), bcryptCost)
	return string(hashed), err
}

func senhasMatch(senhaHash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(senhaHash), []byte(senha)) == nil
}

// GenerateVerificationCode returns a 6-digit numeric code from crypto/rand.
func GenerateVerificationCode() (string, error) {
	code := make([]byte, 6)
	if _, err := rand.Read(code); err != nil {
		return "", fmt.Errorf("could not generate verification code: %v", err)
	}
	for i := range code {
		code[i] = '0' + (code[i] % 10)
	}
	return string(code), nil
}

func validTipo(tipo string) bool {
	return tipo == TipoAdmin || tipo == TipoProfessor || tipo == TipoUser
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(nome, email, matricula, senha, tipo string, cursoID int) (*Usuario, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" || len(nome) > maxNomeLength {
		return nil, ErrNomeLength
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	matricula = strings.TrimSpace(matricula)
	if matricula == "" || len(matricula) > maxMatriculaLength {
		return nil, ErrMatriculaLength
	}
	if len(senha) < minSenhaLength {
		return nil, ErrSenhaLength
	}
	if tipo == "" {
		tipo = TipoUser
	}
	if !validTipo(tipo) {
		return nil, ErrInvalidTipo
	}

	cursoExists, err := s.cursos.CursoExists(cursoID)
	if err != nil {
		slog.Error("Error checking curso existence", "error", err, "cursoId", cursoID)
		return nil, ErrInternalError
	}
	if !cursoExists {
		return nil, ErrCursoNotFound
	}

	existing, err := s.repo.usuarioExistsByEmailOrMatricula(email, matricula)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		slog.Error("Error with database request", "error", err)
		return nil, ErrInternalError
	}
	if existing != nil {
		if existing.Email == email {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrMatriculaAlreadyExists
	}

	senhaHash, err := hashSenha(senha)
	if err != nil {
		slog.Error("Error during hashing the password", "error", err)
		return nil, ErrInternalError
	}

	usuario := &Usuario{
		Nome:      nome,
		Email:     email,
		Matricula: matricula,
		SenhaHash: senhaHash,
		Tipo:      tipo,
		CursoID:   cursoID,
	}

	if err := s.repo.createUsuario(usuario); err != nil {
		slog.Error("Error during creating the user", "error", err)
		return nil, ErrInternalError
	}

	if err := s.sendVerificationCode(usuario); err != nil {
		slog.Error("Error during sending verification email", "error", err)
		return nil, ErrInternalError
	}

	return usuario, nil
}

func (s *service) sendVerificationCode(usuario *Usuario) error {
	code, err := GenerateVerificationCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(codeTTL)
	if err := s.repo.saveCodigo(usuario.ID, code, CodeVerifyType, expiresAt); err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}

	s.emailService.QueueEmail(usuario.Email, emailService.VerificationCodeData{
		UserName: usuario.Nome,
		Code:     code,
	})
	return nil
}

func (s *service) VerifyRegistrationCode(email, code string) error {
	usuario, err := s.repo.getUsuarioByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if usuario.Ativo {
		return ErrUserAlreadyVerified
	}

	storedCode, expiresAt, err := s.repo.getCodigo(usuario.ID, CodeVerifyType)
	if err != nil {
		return ErrInvalidVerificationCode
	}
	if storedCode != code {
		return ErrInvalidVerificationCode
	}
	if time.Now().UTC().After(expiresAt) {
		return ErrVerificationCodeExpired
	}

	if err := s.repo.updateAtivo(usuario.ID, true); err != nil {
		slog.Error("Issue during activating account", "error", err, "usuarioId", usuario.ID)
		return ErrInternalError
	}
	_ = s.repo.deleteCodigos(usuario.ID)
	return nil
}

// Authenticate resolves a user by email or matricula and checks the password.
// Inactive accounts cannot log in.
func (s *service) Authenticate(emailOrMatricula, senha string) (*Usuario, error) {
	usuario, err := s.repo.getUsuarioByEmailOrMatricula(emailOrMatricula)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrInternalError
	}
	if !senhasMatch(usuario.SenhaHash, senha) {
		return nil, ErrInvalidCredentials
	}
	if !usuario.Ativo {
		return nil, ErrUserNotActive
	}
	return usuario, nil
}

func (s *service) RequestPasswordReset(email string) error {
	usuario, err := s.repo.getUsuarioByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return ErrInternalError
	}

	expiresAt := time.Now().UTC().Add(codeTTL)
	if err := s.repo.saveCodigo(usuario.ID, code, CodeResetType, expiresAt); err != nil {
		slog.Error("Error saving reset code", "error", err, "usuarioId", usuario.ID)
		return ErrInternalError
	}

	s.emailService.QueueEmail(usuario.Email, emailService.PasswordResetData{
		UserName: usuario.Nome,
		Code:     code,
	})
	return nil
}

func (s *service) ConfirmPasswordReset(email, code, newSenha string) error {
	if len(newSenha) < minSenhaLength {
		return ErrSenhaLength
	}

	usuario, err := s.repo.getUsuarioByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	storedCode, expiresAt, err := s.repo.getCodigo(usuario.ID, CodeResetType)
	if err != nil {
		return ErrInvalidVerificationCode
	}
	if storedCode != code {
		return ErrInvalidVerificationCode
	}
	if time.Now().UTC().After(expiresAt) {
		return ErrVerificationCodeExpired
	}

	senhaHash, err := hashSenha(newSenha)
	if err != nil {
		return ErrInternalError
	}
	if err := s.repo.updateSenha(usuario.ID, senhaHash); err != nil {
		slog.Error("Could not update password", "error", err, "usuarioId", usuario.ID)
		return ErrInternalError
	}
	_ = s.repo.deleteCodigos(usuario.ID)
	return nil
}

func (s *service) UpdateUsuario(id int, nome, email string, cursoID int) (*Usuario, error) {
	usuario, err := s.repo.getUsuarioByID(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalError
	}

	if nome != "" {
		nome = strings.TrimSpace(nome)
		if nome == "" || len(nome) > maxNomeLength {
			return nil, ErrNomeLength
		}
		usuario.Nome = nome
	}
	if email != "" {
		if err := validateEmailAddress(email); err != nil {
			return nil, err
		}
		if existing, err := s.repo.getUsuarioByEmail(email); err == nil && existing.ID != id {
			return nil, ErrEmailAlreadyExists
		}
		usuario.Email = email
	}
	if cursoID != 0 {
		cursoExists, err := s.cursos.CursoExists(cursoID)
		if err != nil {
			return nil, ErrInternalError
		}
		if !cursoExists {
			return nil, ErrCursoNotFound
		}
		usuario.CursoID = cursoID
	}

	if err := s.repo.updateUsuario(usuario); err != nil {
		slog.Error("Could not update user", "error", err, "usuarioId", id)
		return nil, ErrInternalError
	}
	return usuario, nil
}

// DeleteUsuario removes the user's pending codes and the user row inside one
// transaction.
func (s *service) DeleteUsuario(id int) error {
	if _, err := s.repo.getUsuarioByID(id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}
	if err := s.repo.deleteUsuario(id); err != nil {
		slog.Error("Could not delete user", "error", err, "usuarioId", id)
		return ErrInternalError
	}
	return nil
}

func (s *service) GetUserByID(id int) (*Usuario, error) {
	return s.repo.getUsuarioByID(id)
}

func (s *service) PurgeExpiredCodes() error {
	deleted, err := s.repo.deleteExpiredCodes()
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Purged expired verification codes", "count", deleted)
	}
	return nil
}
