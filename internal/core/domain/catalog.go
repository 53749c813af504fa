package domain

// Service is a bookable salon service.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration,omitempty"`
}

// Master is a staff member that performs services.
type Master struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization,omitempty"`
	Experience     int     `json:"experience,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	UserID         int64   `json:"userId,omitempty"`
}

// Report is a daily revenue summary the backend generates on demand.
type Report struct {
	ID           int64   `json:"id"`
	ReportDate   string  `json:"reportDate"`
	TotalClients int     `json:"totalClients"`
	TotalIncome  float64 `json:"totalIncome"`
}
