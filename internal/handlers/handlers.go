package handlers

// AppHandlers собирает все HTTP-хэндлеры приложения
type AppHandlers struct {
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	CityHandler  *CityHandler
	AdminHandler *AdminHandler
	BotHandler   *BotHandler
}
