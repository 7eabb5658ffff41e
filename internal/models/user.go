package models

type UserRole string

const (
	UserRoleSeeker   UserRole = "seeker"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"
)

type User struct {
	BaseModel
	Email string   `gorm:"uniqueIndex;not null"`
	Role  UserRole `gorm:"type:varchar(20);not null"`

	// FCMToken is the device push token. Empty means the user is not
	// deliverable; the pipeline clears it when the transport reports it stale.
	FCMToken string

	Settings *NotificationSettings `gorm:"foreignKey:UserID"`
}
