package dto

// RecordEntryReq is the request body for recording an observation.
// Value is a pointer so that an explicit zero survives validation.
// Date is optional; when set ("2006-01-02") the entry is backdated to
// that day, otherwise the server clock is used.
type RecordEntryReq struct {
	Metric string   `json:"metric" binding:"required"`
	Value  *float64 `json:"value" binding:"required"`
	Date   string   `json:"date"`
}

// RecordEntryResponse returns the ID assigned to a new entry.
type RecordEntryResponse struct {
	ID uint `json:"id"`
}
