package backend

// Endpoint groups as exposed by the platform. The base URL is configured;
// paths are fixed. MealDetail is the odd one out (a legacy controller route
// that never moved under /api/admin).
const (
	pathAuth         = "/api/auth"
	pathUsers        = "/api/admin/users"
	pathIngredients  = "/api/admin/ingredients"
	pathMeals        = "/api/admin/meals"
	pathMealDetail   = "/api/MealDetail"
	pathBlogs        = "/api/blogs"
	pathTransactions = "/api/admin/transactions"
	pathAnalytics    = "/api/admin/analytics"
	pathStats        = "/api/admin/stats"
	pathFilter       = "/api/filter"
)
