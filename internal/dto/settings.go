package dto

// PutSettingResponse is the backend's acknowledgement of a setting write.
type PutSettingResponse struct {
	OK  bool   `json:"ok"`
	Key string `json:"key"`
}
