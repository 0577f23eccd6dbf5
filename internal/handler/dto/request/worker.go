package request

type DrainQueueRequest struct {
	MaxItems int `json:"max_items,omitempty"`
}
