package response

type DrainQueueResponse struct {
	Processed int `json:"processed"`
}
