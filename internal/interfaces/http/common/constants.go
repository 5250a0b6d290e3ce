package common

const (
	// MaxJSONRequestBody limits JSON request bodies for campaign/form endpoints.
	MaxJSONRequestBody = 1 << 20
	// MaxRosterUploadBytes limits the roster file (CSV/XLSX) accepted at campaign creation.
	MaxRosterUploadBytes = 10 << 20
	// MaxAttachmentBytes limits a single form file upload.
	MaxAttachmentBytes = 20 << 20
)
