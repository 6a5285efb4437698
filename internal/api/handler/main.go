package handler

import (
	"net/http"
	"strconv"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🌾")
	})

	bot, err := do.Invoke[*services.Bot](cfg.Container)
	if err != nil {
		return nil, err
	}
	authentication, err := do.Invoke[*services.Authentication](cfg.Container)
	if err != nil {
		return nil, err
	}
	limiter, err := do.Invoke[interfaces.Limiter](cfg.Container)
	if err != nil {
		return nil, err
	}

	routesAPIv1 := r.Group("/api/v1")
	routesAPIv1.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Origins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           60 * 60,
	}))
	routesAPIv1.GET("", Hello)

	routesAdmin := routesAPIv1.Group("/admin")
	routesAdmin.Use(AdminAuthn(authentication))
	{
		a := groupAdmin{cfg.Container}
		routesAdmin.GET("/stats", a.Stats)
		routesAdmin.GET("/accounts", a.Accounts)
		routesAdmin.GET("/withdrawals", a.PendingWithdrawals)
		routesAdmin.PUT("/transactions/:id/status", a.SetTransactionStatus)
		routesAdmin.POST("/tasks", a.CreateTask)
		routesAdmin.PUT("/tasks/:id/active", a.SetTaskActive)
		routesAdmin.POST("/boosts", a.CreateBoost)
		routesAdmin.GET("/settings", a.Settings)
		routesAdmin.GET("/settings/:key", a.Setting)
		routesAdmin.PUT("/settings/:key", a.SetSetting)
	}

	routesUser := routesAPIv1.Group("")
	routesUser.Use(Authn(bot))
	mutation := RateLimit(limiter, services.USER_MUTATION_RATE_LIMIT_PER_MINUTE)

	me := groupAccount{cfg.Container}
	routesUser.GET("/me", me.Me)
	routesUser.GET("/me/transactions", me.Transactions)

	f := groupFarming{cfg.Container}
	routesUser.GET("/farming", f.Status)
	routesUser.POST("/farming/start", f.Start, mutation)
	routesUser.POST("/farming/claim", f.Claim, mutation)

	t := groupTask{cfg.Container}
	routesUser.GET("/tasks", t.Tasks)
	routesUser.GET("/tasks/completed", t.Completed)
	routesUser.POST("/tasks/:id/complete", t.Complete, mutation)

	rf := groupReferral{cfg.Container}
	routesUser.GET("/referrals", rf.Referrals)
	routesUser.GET("/referrals/stats", rf.Stats)

	b := groupBoost{cfg.Container}
	routesUser.GET("/boosts", b.Boosts)
	routesUser.GET("/boosts/active", b.Active)
	routesUser.POST("/boosts/:id/purchase", b.Purchase, mutation)

	w := groupWallet{cfg.Container}
	routesUser.POST("/wallet/deposit", w.Deposit, mutation)
	routesUser.GET("/wallet/withdraw/check", w.CheckWithdraw)
	routesUser.POST("/wallet/withdraw", w.Withdraw, mutation)

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}

func paramID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
