package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	NotificationService NotificationService
	SettingsService     SettingsService
	UserService         UserService
	DeliveryService     DeliveryService
}
