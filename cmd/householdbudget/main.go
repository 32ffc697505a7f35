package main

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/sebuszqo/HouseholdBudget/db"
	"github.com/sebuszqo/HouseholdBudget/internal/academics/curso"
	"github.com/sebuszqo/HouseholdBudget/internal/academics/disciplina"
	"github.com/sebuszqo/HouseholdBudget/internal/academics/topico"
	"github.com/sebuszqo/HouseholdBudget/internal/auth"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/application"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/infrastructure"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/interfaces"
	emailService "github.com/sebuszqo/HouseholdBudget/internal/email"
	"github.com/sebuszqo/HouseholdBudget/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		slog.Info("Request completed",
			"method", r.Method, "path", r.URL.Path,
			"status", recorder.status, "duration", time.Since(start))
	})
}

// apiKeyMiddleware rejects requests missing the expected X-API-Key header.
// When API_KEY is unset the filter is disabled.
func apiKeyMiddleware(next http.Handler) http.Handler {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, API key filter disabled")
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != apiKey {
			respondError(w, http.StatusUnauthorized, "Invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router            *http.ServeMux
	dbService         *database.DBService
	authHandler       *auth.Handler
	authService       auth.Service
	userHandler       *user.Handler
	transacaoHandler  *interfaces.TransacaoHandler
	pessoaHandler     *interfaces.PessoaHandler
	categoriaHandler  *interfaces.CategoriaHandler
	relatorioHandler  *interfaces.RelatorioHandler
	cursoHandler      *curso.Handler
	disciplinaHandler *disciplina.Handler
	topicoHandler     *topico.Handler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/email/verify", http.HandlerFunc(s.userHandler.HandleVerifyEmail))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/password-reset/request", http.HandlerFunc(s.userHandler.HandleRequestPasswordReset))
	publicRoutes.Handle("POST /api/password-reset/confirm", http.HandlerFunc(s.userHandler.HandleConfirmPasswordReset))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	publicRoutes.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))

	// Budget API
	publicRoutes.Handle("POST /api/transacoes", http.HandlerFunc(s.transacaoHandler.CreateTransacao))
	publicRoutes.Handle("GET /api/transacoes", http.HandlerFunc(s.transacaoHandler.GetTransacoes))
	publicRoutes.Handle("POST /api/pessoas", http.HandlerFunc(s.pessoaHandler.CreatePessoa))
	publicRoutes.Handle("GET /api/pessoas", http.HandlerFunc(s.pessoaHandler.GetPessoas))
	publicRoutes.Handle("DELETE /api/pessoas/{id}", http.HandlerFunc(s.pessoaHandler.DeletePessoa))
	publicRoutes.Handle("POST /api/categorias", http.HandlerFunc(s.categoriaHandler.CreateCategoria))
	publicRoutes.Handle("GET /api/categorias", http.HandlerFunc(s.categoriaHandler.GetCategorias))
	publicRoutes.Handle("GET /api/relatorios/pessoas", http.HandlerFunc(s.relatorioHandler.GetRelatorioPessoas))
	publicRoutes.Handle("GET /api/relatorios/categorias", http.HandlerFunc(s.relatorioHandler.GetRelatorioCategorias))

	// Academics API
	publicRoutes.Handle("POST /api/cursos", http.HandlerFunc(s.cursoHandler.CreateCurso))
	publicRoutes.Handle("GET /api/cursos", http.HandlerFunc(s.cursoHandler.GetCursos))
	publicRoutes.Handle("GET /api/cursos/{id}", http.HandlerFunc(s.cursoHandler.GetCurso))
	publicRoutes.Handle("POST /api/disciplinas", http.HandlerFunc(s.disciplinaHandler.CreateDisciplina))
	publicRoutes.Handle("GET /api/disciplinas", http.HandlerFunc(s.disciplinaHandler.GetDisciplinas))
	publicRoutes.Handle("GET /api/disciplinas/{id}", http.HandlerFunc(s.disciplinaHandler.GetDisciplina))
	publicRoutes.Handle("DELETE /api/disciplinas/{id}", http.HandlerFunc(s.disciplinaHandler.DeleteDisciplina))
	publicRoutes.Handle("GET /api/topicos", http.HandlerFunc(s.topicoHandler.GetTopicos))

	// Protected routes (JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.userHandler.HandleGetProfile)))
	protectedRoutes.Handle("POST /api/protected/topicos",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.topicoHandler.CreateTopico)))
	protectedRoutes.Handle("DELETE /api/protected/topicos/{id}",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.topicoHandler.DeleteTopico)))

	// User management is admin-only
	protectedRoutes.Handle("PUT /api/protected/usuarios/{id}",
		s.authService.JWTAccessTokenMiddleware()(s.authService.RequireAdmin(s.userHandler.HandleUpdateUsuario)))
	protectedRoutes.Handle("DELETE /api/protected/usuarios/{id}",
		s.authService.JWTAccessTokenMiddleware()(s.authService.RequireAdmin(s.userHandler.HandleDeleteUsuario)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	newEmailService := emailService.NewEmailService()
	jwtManager := auth.NewJWTManager()

	cursoRepo := curso.NewCursoRepository(dbService.DB)
	cursoService := curso.NewCursoService(cursoRepo)
	cursoHandler := curso.NewHandler(cursoService, respondJSON, respondError)

	disciplinaRepo := disciplina.NewDisciplinaRepository(dbService.DB)
	disciplinaService := disciplina.NewDisciplinaService(disciplinaRepo, cursoRepo)
	disciplinaHandler := disciplina.NewHandler(disciplinaService, respondJSON, respondError)

	topicoRepo := topico.NewTopicoRepository(dbService.DB)
	topicoService := topico.NewTopicoService(topicoRepo, disciplinaRepo)
	topicoHandler := topico.NewHandler(topicoService, respondJSON, respondError)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, cursoRepo, newEmailService)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	pessoaRepo := infrastructure.NewPessoaRepository(dbService.DB)
	categoriaRepo := infrastructure.NewCategoriaRepository(dbService.DB)
	transacaoRepo := infrastructure.NewTransacaoRepository(dbService.DB)
	relatorioRepo := infrastructure.NewRelatorioRepository(dbService.DB)

	transacaoService := application.NewTransacaoService(transacaoRepo, pessoaRepo, categoriaRepo)
	pessoaService := application.NewPessoaService(pessoaRepo, transacaoRepo)
	categoriaService := application.NewCategoriaService(categoriaRepo)
	relatorioService := application.NewRelatorioService(relatorioRepo)

	server := &Server{
		dbService:         dbService,
		authHandler:       authHandler,
		authService:       authService,
		userHandler:       userHandler,
		transacaoHandler:  interfaces.NewTransacaoHandler(transacaoService, respondJSON, respondError),
		pessoaHandler:     interfaces.NewPessoaHandler(pessoaService, respondJSON, respondError),
		categoriaHandler:  interfaces.NewCategoriaHandler(categoriaService, respondJSON, respondError),
		relatorioHandler:  interfaces.NewRelatorioHandler(relatorioService, respondJSON, respondError),
		cursoHandler:      cursoHandler,
		disciplinaHandler: disciplinaHandler,
		topicoHandler:     topicoHandler,
	}
	server.RegisterRoutes()

	if err := StartCodePurgeScheduler(userService); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app ...")
	}

	handler := loggingMiddleware(apiKeyMiddleware(server.router))
	slog.Info("Server starting", "port", 8080)
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartCodePurgeScheduler removes expired verification and reset codes every
// hour.
func StartCodePurgeScheduler(userService user.Service) error {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		if err := userService.PurgeExpiredCodes(); err != nil {
			slog.Error("Error purging expired codes", "error", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
