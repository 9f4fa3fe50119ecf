package internal

import (
	"net/http"
	"nutriscan/internal/controllers"
	"nutriscan/internal/providers"
)

func InitRoutes(api *controllers.ApiController, session *controllers.SessionController, capture *controllers.CaptureController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/meals", http.HandlerFunc(api.GetMeals))
	routers.Delete("/meals/{id}", http.HandlerFunc(api.DeleteMeal))
	routers.Get("/water", http.HandlerFunc(api.GetWaterLog))
	routers.Post("/water", http.HandlerFunc(api.AddWater))
	routers.Delete("/water/today", http.HandlerFunc(api.ResetTodayWater))
	routers.Post("/history/clear", http.HandlerFunc(api.ClearHistory))
	routers.Get("/totals/daily", http.HandlerFunc(api.DailyTotals))
	routers.Get("/totals/weekly", http.HandlerFunc(api.WeeklySeries))
	routers.Get("/progress", http.HandlerFunc(api.GoalProgress))
	routers.Get("/goals", http.HandlerFunc(api.GetGoals))
	routers.Patch("/goals", http.HandlerFunc(api.UpdateGoals))
	routers.Get("/goals/water/recommended", http.HandlerFunc(api.RecommendedWater))
	routers.Get("/onboarding", http.HandlerFunc(api.GetOnboarding))
	routers.Post("/onboarding", http.HandlerFunc(api.CompleteOnboarding))
	routers.Get("/stats", http.HandlerFunc(api.GetStats))

	routers.Get("/session", http.HandlerFunc(session.Current))
	routers.Post("/session/login", http.HandlerFunc(session.Login))
	routers.Post("/session/subscription", http.HandlerFunc(session.SetSubscription))
	routers.Post("/session/unlock", http.HandlerFunc(session.Unlock))

	routers.Post("/capture", http.HandlerFunc(capture.Analyze))
	routers.Get("/capture", http.HandlerFunc(capture.Draft))
	routers.Delete("/capture", http.HandlerFunc(capture.Cancel))
	routers.Post("/capture/weight", http.HandlerFunc(capture.AdjustWeight))
	routers.Post("/capture/commit", http.HandlerFunc(capture.Commit))
	return routers
}
