package response

type StatsResponse struct {
	Users   int64 `json:"users"`
	Movies  int64 `json:"movies"`
	Reviews int64 `json:"reviews"`
}
