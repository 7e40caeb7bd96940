package routes

import (
	"github.com/mutaremalcolm/calorie-counter-app-sub000/controllers"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Log        *zap.Logger
	JWTSecret  []byte
	Metrics    bool
	Auth       *controllers.AuthController
	Calculator *controllers.CalculatorController
	Dashboard  *controllers.DashboardController
	Realtime   *controllers.RealtimeController
	Health     *controllers.HealthController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.RequestLogger(d.Log))

	r.GET("/healthz", d.Health.Healthz)
	if d.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
	}

	calc := r.Group("/calculators")
	{
		calc.POST("/calories", d.Calculator.CalorieTargets)
		calc.POST("/bmi", d.Calculator.BMI)
		calc.POST("/ibw", d.Calculator.IBW)
		calc.POST("/energy-balance", d.Calculator.EnergyBalance)
	}

	// Protected dashboard routes
	dash := r.Group("/dashboard")
	dash.Use(middlewares.AuthMiddleware(d.JWTSecret))
	{
		dash.GET("/goal", d.Dashboard.GetGoal)
		dash.PUT("/goal", d.Dashboard.UpdateGoal)
		dash.PUT("/progress", d.Dashboard.UpdateProgress)
		dash.GET("/history", d.Dashboard.GetHistory)
		dash.GET("/summary", d.Dashboard.GetSummary)
		dash.GET("/ws", d.Realtime.DashboardWS)
	}

	return r
}
