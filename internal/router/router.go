package router

import (
	_ "embed"
	"net/http"
	"time"

	"erpvendas/internal/config"
	"erpvendas/internal/handler"
	"erpvendas/internal/middleware"
	"erpvendas/internal/repository"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

//go:embed openapi.json
var openAPIDoc []byte

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
// Periods and monthly buckets are computed in loc.
func New(cfg *config.Config, db *gorm.DB, loc *time.Location) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	interacaoRepo := repository.NewInteracaoRepository(db)
	metaRepo := repository.NewMetaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	atividade := service.NewAtividadeCliente(clienteRepo, vendaRepo, interacaoRepo)

	clienteSvc := service.NewClienteService(clienteRepo, vendaRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, vendaRepo)
	vendaSvc := service.NewVendaService(vendaRepo, clienteRepo, produtoRepo, atividade, loc)
	interacaoSvc := service.NewInteracaoService(interacaoRepo, clienteRepo, atividade, loc)
	metaSvc := service.NewMetaService(metaRepo)
	dashboardSvc := service.NewDashboardService(vendaRepo, interacaoRepo, clienteRepo, produtoRepo, metaRepo, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	interacoesH := handler.NewInteracoesHandler(interacaoSvc)
	metasH := handler.NewMetasHandler(metaSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openAPIDoc)
		})
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))
	}

	// Seller-scoped routes; auth is enforced only when JWT_SECRET is set.
	v1 := r.Group("/v1", middleware.SellerAuth(cfg.JWTSecret, cfg.DefaultSellerID))
	{
		collection(v1, "/clientes", clientesH.Listar, clientesH.Criar, clientesH.Atualizar, clientesH.Excluir)
		collection(v1, "/produtos", produtosH.Listar, produtosH.Criar, produtosH.Atualizar, produtosH.Excluir)
		collection(v1, "/vendas", vendasH.Listar, vendasH.Registrar, vendasH.Atualizar, vendasH.Excluir)
		collection(v1, "/interacoes", interacoesH.Listar, interacoesH.Registrar, interacoesH.Atualizar, interacoesH.Excluir)
		collection(v1, "/metas", metasH.Listar, metasH.Criar, metasH.Atualizar, metasH.Excluir)

		dash := v1.Group("/dashboard")
		{
			dash.GET("", dashboardH.Consultar)
			dash.GET("/comissoes", dashboardH.Comissoes)
			dash.GET("/interacoes", dashboardH.Interacoes)
			dash.GET("/reativar", dashboardH.Reativar)
		}
	}

	return r
}

// collection registers the CRUD routes of one record type. The id is taken
// from ?id= or from the /:id path segment.
func collection(g *gin.RouterGroup, path string, list, create, update, remove gin.HandlerFunc) {
	grp := g.Group(path)
	grp.GET("", list)
	grp.GET("/:id", list)
	grp.POST("", create)
	grp.PUT("", update)
	grp.PUT("/:id", update)
	grp.DELETE("", remove)
	grp.DELETE("/:id", remove)
}
