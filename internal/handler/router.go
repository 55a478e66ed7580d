package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hitoshi/nutribud/internal/metrics"
	"github.com/hitoshi/nutribud/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionResolver    middleware.SessionResolver
	CORSAllowedOrigins []string
	RateLimiter        *middleware.RateLimiter
	Metrics            *metrics.Collector

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 検索（パススルー）
	FoodSearcher  FoodSearcherInterface
	BarcodeLookup BarcodeLookupInterface

	// ドメイン
	TrackingService    TrackingServiceInterface
	ProfileService     ProfileServiceInterface
	PerformanceService PerformanceServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → Logging →（認証グループのみ）Session → RateLimit(General)
//
// ログイン・登録にはIPキーの認証レート制限を追加する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())

	// credentials付きCookie送信と共存させるため、ワイルドカードではなく明示オリジンを使う
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	if deps.Metrics != nil {
		r.Use(metrics.Instrument(deps.Metrics))
	}
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	searchHandler := NewSearchHandler(deps.FoodSearcher, deps.BarcodeLookup)
	trackingHandler := NewTrackingHandler(deps.TrackingService)
	profileHandler := NewProfileHandler(deps.ProfileService)
	perfHandler := NewPerformanceHandler(deps.PerformanceService)

	// --- 認証不要のルート ---

	r.Get("/", Health)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.AuthMiddleware())
		}
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	// セッションプローブはCookieの有無だけを見るため、ミドルウェアの外に置く
	r.Get("/login", authHandler.Probe)

	r.Get("/search-text", searchHandler.SearchText)
	r.Get("/search-barcode", searchHandler.SearchBarcode)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionResolver))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Delete("/login", authHandler.Logout)

		r.Post("/tracking", trackingHandler.Track)
		r.Get("/tracking", trackingHandler.List)

		r.Get("/goals", profileHandler.GetGoals)
		r.Patch("/goals", profileHandler.UpdateGoals)

		r.Get("/user-info", profileHandler.GetInfo)
		r.Post("/user-info", profileHandler.CreateInfo)
		r.Patch("/user-info", profileHandler.UpdateInfo)

		r.Post("/performance-history", perfHandler.Record)
	})

	// GET /performance-history のdate/allTime排他チェックはセッション解決より先に行う。
	// 矛盾したリクエストはログイン状態に関わらず拒否される。
	r.Group(func(r chi.Router) {
		r.Use(perfHandler.HistoryQueryGuard())
		r.Use(middleware.NewSessionMiddleware(deps.SessionResolver))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Get("/performance-history", perfHandler.History)
	})

	return r
}
