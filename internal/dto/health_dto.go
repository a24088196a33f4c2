package dto

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	KV       string `json:"kv"`
}

func (h HealthResponse) Healthy() bool {
	return h.Status == "ok"
}
