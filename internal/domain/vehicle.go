package domain

type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "ACTIVE"
	VehicleStatusInactive VehicleStatus = "INACTIVE"
)

// Vehicle is the read model consumed from the fleet collaborator. Vehicle
// management itself lives outside this service.
type Vehicle struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	DailyRateCents int64         `json:"daily_rate_cents"`
	Status         VehicleStatus `json:"status"`
	IsAvailable    bool          `json:"is_available"`
	OwnerAdminID   int64         `json:"owner_admin_id"`
}
