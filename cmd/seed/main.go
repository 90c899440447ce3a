// cmd/seed carrega dados de demonstração (idempotente).
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"erpvendas/internal/config"
	"erpvendas/internal/dto"
	"erpvendas/internal/infra"
	"erpvendas/internal/model"
	"erpvendas/internal/repository"
	"erpvendas/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid APP_TIMEZONE")
	}
	if cfg.DBDriver == infra.DriverPostgres && cfg.RunMigrations {
		if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	clientes := []model.Cliente{
		{Nome: "Metalúrgica Horizonte", CNPJ: "11.222.333/0001-44", Email: "compras@horizonte.com.br", Setor: strPtr("Indústria"), Regiao: strPtr("Sudeste")},
		{Nome: "Agro Vale Verde", CNPJ: "22.333.444/0001-55", Email: "contato@valeverde.agr.br", Setor: strPtr("Agronegócio"), Regiao: strPtr("Centro-Oeste")},
		{Nome: "Comercial Litoral", CNPJ: "33.444.555/0001-66", Email: "financeiro@litoral.com.br", Regiao: strPtr("Nordeste")},
	}
	produtos := []model.Produto{
		{Nome: "Painel Solar 550W", Codigo: "PS-550", Preco: decimal.RequireFromString("1000.00")},
		{Nome: "Inversor 5kW", Codigo: "INV-5K", Preco: decimal.RequireFromString("4200.00")},
	}

	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "cnpj"}}, DoNothing: true}).Create(&clientes).Error; err != nil {
		log.Fatal().Err(err).Msg("seed clientes")
	}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "codigo"}}, DoNothing: true}).Create(&produtos).Error; err != nil {
		log.Fatal().Err(err).Msg("seed produtos")
	}

	vendaRepo := repository.NewVendaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	interacaoRepo := repository.NewInteracaoRepository(db)
	atividade := service.NewAtividadeCliente(clienteRepo, vendaRepo, interacaoRepo)

	existing, err := vendaRepo.List(ctx, dto.VendaFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("list vendas")
	}
	if len(existing) > 0 {
		log.Info().Int("vendas", len(existing)).Msg("sales already present, skipping")
		return
	}

	cliente, err := clienteRepo.FindByCNPJ(ctx, clientes[0].CNPJ)
	if err != nil {
		log.Fatal().Err(err).Msg("find cliente")
	}
	produto, err := produtoRepo.FindByCodigo(ctx, produtos[0].Codigo)
	if err != nil {
		log.Fatal().Err(err).Msg("find produto")
	}

	vendaSvc := service.NewVendaService(vendaRepo, clienteRepo, produtoRepo, atividade, loc)
	interacaoSvc := service.NewInteracaoService(interacaoRepo, clienteRepo, atividade, loc)

	for _, fator := range []string{"1.25", "1.15", "1.0"} {
		_, err := vendaSvc.Registrar(ctx, dto.VendaRequest{
			ClienteID:         cliente.ID.String(),
			ProdutoID:         produto.ID.String(),
			Preco:             produto.Preco,
			FatorVenda:        decimal.RequireFromString(fator),
			CondicaoPagamento: "30/60/90",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("seed venda")
		}
	}
	if _, err := interacaoSvc.Registrar(ctx, dto.InteracaoRequest{
		ClienteID: cliente.ID.String(),
		Descricao: "Visita técnica e apresentação de proposta",
	}); err != nil {
		log.Fatal().Err(err).Msg("seed interação")
	}

	log.Info().Msg("seed complete")
}
