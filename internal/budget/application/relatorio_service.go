package application

import (
	"context"
	"log/slog"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

// RelatorioService assembles the report responses. Rollups are recomputed
// on every call; the grand total is summed directly over the transaction
// set, never by re-adding the per-entity rows.
type RelatorioService struct {
	repo domain.RelatorioRepository
}

func NewRelatorioService(repo domain.RelatorioRepository) *RelatorioService {
	return &RelatorioService{repo: repo}
}

type RelatorioPessoasResponse struct {
	Pessoas    []domain.PessoaTotal `json:"Pessoas"`
	TotalGeral domain.TotalGeral    `json:"TotalGeral"`
}

type RelatorioCategoriasResponse struct {
	Categorias []domain.CategoriaTotal `json:"Categorias"`
	TotalGeral domain.TotalGeral       `json:"TotalGeral"`
}

func (s *RelatorioService) RelatorioPessoas(ctx context.Context) (*RelatorioPessoasResponse, error) {
	totais, err := s.repo.TotaisPorPessoa(ctx)
	if err != nil {
		return nil, err
	}
	if totais == nil {
		totais = []domain.PessoaTotal{}
	}

	geral, err := s.repo.TotaisGerais(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("Per-person report computed", "pessoas", len(totais))
	return &RelatorioPessoasResponse{Pessoas: totais, TotalGeral: geral}, nil
}

func (s *RelatorioService) RelatorioCategorias(ctx context.Context) (*RelatorioCategoriasResponse, error) {
	totais, err := s.repo.TotaisPorCategoria(ctx)
	if err != nil {
		return nil, err
	}
	if totais == nil {
		totais = []domain.CategoriaTotal{}
	}

	geral, err := s.repo.TotaisGerais(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("Per-category report computed", "categorias", len(totais))
	return &RelatorioCategoriasResponse{Categorias: totais, TotalGeral: geral}, nil
}
