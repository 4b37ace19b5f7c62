package router

import (
	"time"

	"github.com/Antoni2487/Bodeguita/internal/config"
	"github.com/Antoni2487/Bodeguita/internal/handler"
	"github.com/Antoni2487/Bodeguita/internal/locks"
	"github.com/Antoni2487/Bodeguita/internal/middleware"
	"github.com/Antoni2487/Bodeguita/internal/queue"
	"github.com/Antoni2487/Bodeguita/internal/repository"
	"github.com/Antoni2487/Bodeguita/internal/service"
	"github.com/Antoni2487/Bodeguita/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App exposes the services main needs for boot: the in-memory queues and
// stacks must be rehydrated from the database before the server accepts
// traffic.
type App struct {
	Pedidos        *service.PedidoService
	Notificaciones *service.NotificacionService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *App) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	bodegaRepo := repository.NewBodegaRepository(db)
	productoBodegaRepo := repository.NewProductoBodegaRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)

	// ── In-memory state ──────────────────────────────────────────────────────
	// Shared between services: the fulfillment workflow and the ledger must
	// serialize on the same per-listing locks, and sale cancellation too.
	bodegaLocks := locks.NewKeyed()
	listingLocks := locks.NewKeyed()
	colas := queue.NewPedidoColas()
	pilas := queue.NewNotificacionPilas()

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	inventarioSvc := service.NewInventarioService(productoBodegaRepo, inventarioRepo, listingLocks)
	checkoutSvc := service.NewCheckoutService(bodegaRepo, productoBodegaRepo, metodoPagoRepo)
	notificacionSvc := service.NewNotificacionService(notificacionRepo, pilas)
	pedidoSvc := service.NewPedidoService(
		pedidoRepo, productoBodegaRepo, bodegaRepo, usuarioRepo, ventaRepo,
		inventarioSvc, notificacionSvc, colas, bodegaLocks, listingLocks, dispatcher,
	)
	ventaSvc := service.NewVentaService(ventaRepo, inventarioSvc, listingLocks)

	// ── Handlers ─────────────────────────────────────────────────────────────
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	notificacionesH := handler.NewNotificacionesHandler(notificacionSvc)
	preciosH := handler.NewPreciosHandler(productoBodegaRepo, bodegaRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Price check and eligibility evaluation — no auth required, both are
	// strictly read-only
	r.GET("/v1/precio/:id", preciosH.GetPrecio)
	r.POST("/v1/checkout/validar", checkoutH.Validar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cliente, bodeguero, admin — declared per-endpoint
		v1.POST("/pedidos", middleware.RequireRole(middleware.RolCliente, middleware.RolAdmin), pedidosH.Crear)
		v1.GET("/pedidos", middleware.RequireRole(middleware.RolCliente, middleware.RolBodeguero, middleware.RolAdmin), pedidosH.ListarMisPedidos)
		v1.GET("/pedidos/:id", middleware.RequireRole(middleware.RolCliente, middleware.RolBodeguero, middleware.RolAdmin), pedidosH.Obtener)
		// Manual orders are created at the counter by staff
		v1.POST("/pedidos/manual", middleware.RequireRole(middleware.RolBodeguero, middleware.RolAdmin), pedidosH.CrearManual)

		cola := v1.Group("/bodegas/:id/pedidos", middleware.RequireRole(middleware.RolBodeguero, middleware.RolAdmin))
		{
			cola.GET("/cola", pedidosH.Cola)
			cola.GET("/siguiente", pedidosH.Siguiente)
			cola.POST("/confirmar", pedidosH.ConfirmarSiguiente)
		}

		inv := v1.Group("/inventario", middleware.RequireRole(middleware.RolBodeguero, middleware.RolAdmin))
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/:id/movimientos", inventarioH.Historial)
		}

		v1.GET("/ventas/:id", middleware.RequireRole(middleware.RolBodeguero, middleware.RolAdmin), ventasH.Obtener)
		v1.POST("/ventas/:id/anular", middleware.RequireRole(middleware.RolBodeguero, middleware.RolAdmin), ventasH.Anular)

		// Notificaciones — every authenticated role has its own stack
		v1.GET("/notificaciones", middleware.RequireRole(middleware.RolCliente, middleware.RolBodeguero, middleware.RolAdmin), notificacionesH.Feed)
		v1.PATCH("/notificaciones/:id/leida", middleware.RequireRole(middleware.RolCliente, middleware.RolBodeguero, middleware.RolAdmin), notificacionesH.MarcarLeida)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &App{Pedidos: pedidoSvc, Notificaciones: notificacionSvc}
}
