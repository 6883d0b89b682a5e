package db

// Job is a marketplace job cached in the local catalogue. Data carries the
// full JSON payload as returned by the API; the indexed columns exist for
// listing and searching without parsing it.
type Job struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	Title    string  `gorm:"index" json:"title"` // Indexed for faster queries
	Category string  `gorm:"index" json:"category"`
	Status   string  `json:"status"`
	Budget   float64 `json:"budget"`
	Data     string  `json:"data"`
}
