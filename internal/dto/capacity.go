package dto

// Capacity statuses for a single master on a given date.
const (
	CapacityStatusFree       = "FREE"
	CapacityStatusBusy       = "BUSY"
	CapacityStatusNoSchedule = "NO_SCHEDULE"
)

type MasterCapacity struct {
	MasterID        uint    `json:"masterId"`
	Email           string  `json:"email"`
	AvailableSlots  int     `json:"availableSlots"`
	AssignedOrders  int     `json:"assignedOrders"`
	CapacityPercent float64 `json:"capacityPercent"`
	Status          string  `json:"status"`
}

type SystemCapacity struct {
	TotalMasters           int `json:"totalMasters"`
	MastersWithSchedule    int `json:"mastersWithSchedule"`
	MastersFree            int `json:"mastersFree"`
	MastersBusy            int `json:"mastersBusy"`
	MastersWithoutSchedule int `json:"mastersWithoutSchedule"`
	TotalSlots             int `json:"totalSlots"`
	OccupiedSlots          int `json:"occupiedSlots"`
	AvailableSlots         int `json:"availableSlots"`
	PendingNew             int `json:"pendingNew"`
	PendingInProcessing    int `json:"pendingInProcessing"`
	PendingTotal           int `json:"pendingTotal"`
}

// Recommendation types emitted by the capacity analysis.
const (
	RecommendationAddCapacity      = "ADD_CAPACITY"
	RecommendationFillSchedule     = "FILL_SCHEDULE"
	RecommendationExtendVisibility = "EXTEND_VISIBILITY"
)

type Recommendation struct {
	Type            string `json:"type"`
	Message         string `json:"message"`
	SuggestedAction string `json:"suggestedAction"`
}

type CapacityResponse struct {
	Date            string           `json:"date"`
	Masters         []MasterCapacity `json:"masters"`
	System          SystemCapacity   `json:"system"`
	Recommendations []Recommendation `json:"recommendations"`
}
