package router

import (
	"time"

	"kajamart/internal/config"
	"kajamart/internal/handler"
	"kajamart/internal/infra"
	"kajamart/internal/middleware"
	"kajamart/internal/repository"
	"kajamart/internal/service"
	"kajamart/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, suppliers *infra.SuppliersClient) *gin.Engine {
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
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	bajaRepo := repository.NewBajaRepository(db)
	devProvRepo := repository.NewDevolucionProveedorRepository(db)
	devCliRepo := repository.NewDevolucionClienteRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	ventaSvc := service.NewVentaService(ventaRepo, loteRepo, clienteRepo, dispatcher)
	bajaSvc := service.NewBajaService(bajaRepo, loteRepo, usuarioRepo, dispatcher, dispatcher)
	devProvSvc := service.NewDevolucionProveedorService(devProvRepo, loteRepo, usuarioRepo, dispatcher)
	devCliSvc := service.NewDevolucionClienteService(devCliRepo, ventaRepo, loteRepo, bajaRepo, usuarioRepo, dispatcher)
	loteSvc := service.NewLoteService(loteRepo, productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	bajasH := handler.NewBajasHandler(bajaSvc)
	devProvH := handler.NewDevolucionesProveedorHandler(devProvSvc)
	devCliH := handler.NewDevolucionesClienteHandler(devCliSvc)
	lotesH := handler.NewLotesHandler(loteSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoRepo)
	proveedoresH := handler.NewProveedoresHandler(suppliers)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	if cfg.JWTSecret != "" {
		// Optional auth: single-register deployments run without a secret.
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	}
	{
		// Sales
		api.POST("/sales", ventasH.CrearVenta)
		api.GET("/sales", ventasH.ListarVentas)
		api.GET("/sales/search", ventasH.BuscarVentas)
		api.GET("/sales/:id", ventasH.ObtenerVenta)
		api.PUT("/sales/:id/status", ventasH.ActualizarEstado)

		// Write-off batches
		api.POST("/lowProducts", bajasH.CrearBaja)
		api.GET("/lowProducts", bajasH.ListarBajas)
		api.GET("/lowProducts/search", bajasH.BuscarBajas)
		api.GET("/lowProducts/:id", bajasH.ObtenerBaja)

		// Returns to supplier
		api.POST("/returnProducts", devProvH.Crear)
		api.GET("/returnProducts", devProvH.Listar)
		api.GET("/returnProducts/search", devProvH.Buscar)
		api.GET("/returnProducts/:id", devProvH.Obtener)

		// Returns from customer
		api.POST("/returnClient", devCliH.Crear)
		api.GET("/returnClient", devCliH.Listar)
		api.GET("/returnClient/:id", devCliH.Obtener)

		// Lots
		api.POST("/detailsProducts", lotesH.CrearLote)
		api.GET("/detailsProducts", lotesH.ListarLotes)
		api.GET("/detailsProducts/:id", lotesH.ObtenerLote)
		api.PUT("/detailsProducts/:id", lotesH.ActualizarLote)
		api.DELETE("/detailsProducts/:id", lotesH.DesactivarLote)
		api.DELETE("/detailsProducts/:id/purge", lotesH.EliminarLote)

		// Customers
		api.POST("/clients", clientesH.CrearCliente)
		api.GET("/clients", clientesH.ListarClientes)
		api.GET("/clients/:id", clientesH.ObtenerCliente)
		api.PUT("/clients/:id", clientesH.ActualizarCliente)
		api.DELETE("/clients/:id", clientesH.EliminarCliente)

		// Catalog reads
		api.GET("/products", productosH.Listar)
		api.GET("/products/lowStock", productosH.BajoMinimo)
		api.GET("/products/barcode/:barcode", productosH.ObtenerPorBarcode)

		// External suppliers catalog (proxied, circuit-broken)
		api.GET("/providers", proveedoresH.Listar)
		api.GET("/providers/byInvoice/:numero", proveedoresH.PorFactura)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
