package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	NotificationHandler *NotificationHandler
	SettingsHandler     *SettingsHandler
	UserHandler         *UserHandler
}
