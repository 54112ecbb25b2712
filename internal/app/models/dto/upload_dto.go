package dto

// PresignUploadRequest asks for a direct-to-bucket upload URL
type PresignUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignUploadResponse carries the signed PUT URL and the public file URL
// the client should persist once the upload succeeds.
type PresignUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}
