package dto

type BookingStatsDTO struct {
	ByStatus map[string]int64 `json:"byStatus"`
	Today    int64            `json:"today"`
}
